package handlers

import "testing"

func TestValidDate(t *testing.T) {
	valid := []string{"2026-09-07", "2026-01-01", "2026-12-31"}
	for _, d := range valid {
		if !validDate(d) {
			t.Errorf("validDate(%q) = false, want true", d)
		}
	}

	invalid := []string{"", "07/09/2026", "2026-13-01", "2026-09-32", "hoje"}
	for _, d := range invalid {
		if validDate(d) {
			t.Errorf("validDate(%q) = true, want false", d)
		}
	}
}

func TestValidTimeHM(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, v := range valid {
		if !validTimeHM(v) {
			t.Errorf("validTimeHM(%q) = false, want true", v)
		}
	}

	invalid := []string{"", "24:00", "9h30", "09:60"}
	for _, v := range invalid {
		if validTimeHM(v) {
			t.Errorf("validTimeHM(%q) = true, want false", v)
		}
	}
}
