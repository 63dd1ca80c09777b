package timezone

import "testing"

func TestIsValid(t *testing.T) {
	valid := []string{"America/Sao_Paulo", "America/Manaus", "UTC", "Europe/Lisbon"}
	for _, tz := range valid {
		if !IsValid(tz) {
			t.Errorf("IsValid(%q) = false, want true", tz)
		}
	}

	invalid := []string{"", "Marte/Base1", "Brasilia"}
	for _, tz := range invalid {
		if IsValid(tz) {
			t.Errorf("IsValid(%q) = true, want false", tz)
		}
	}
}

func TestLocationFallback(t *testing.T) {
	if got := Location("America/Manaus").String(); got != "America/Manaus" {
		t.Errorf("Location = %q, want America/Manaus", got)
	}

	if got := Location("Marte/Base1").String(); got != DefaultTimezone {
		t.Errorf("Location = %q, want %q", got, DefaultTimezone)
	}

	if got := Location("").String(); got != DefaultTimezone {
		t.Errorf("Location(\"\") = %q, want %q", got, DefaultTimezone)
	}
}
