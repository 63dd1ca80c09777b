package handlers

import "time"

func validDate(dateStr string) bool {
	_, err := time.Parse("2006-01-02", dateStr)
	return err == nil
}

func validTimeHM(timeStr string) bool {
	_, err := time.Parse("15:04", timeStr)
	return err == nil
}
