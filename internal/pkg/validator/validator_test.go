package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidAccountCode(t *testing.T) {
	valid := []string{"1101", "1101-02", "6100-01-03"}
	invalid := []string{"", "abc", "11a1", "1101-", "-1101", "1101--02"}
	for _, code := range valid {
		if !IsValidAccountCode(code) {
			t.Errorf("IsValidAccountCode(%q) = false, want true", code)
		}
	}
	for _, code := range invalid {
		if IsValidAccountCode(code) {
			t.Errorf("IsValidAccountCode(%q) = true, want false", code)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2026-08-31"); !ok {
		t.Error("IsValidDate(\"2026-08-31\") = false, want true")
	}
	for _, input := range []string{"", "2026-13-01", "2026-08-32", "31-08-2026", "2026/08/31"} {
		if _, ok := IsValidDate(input); ok {
			t.Errorf("IsValidDate(%q) = true, want false", input)
		}
	}
}

func TestIsValidPeriod(t *testing.T) {
	if _, ok := IsValidPeriod("2026-08"); !ok {
		t.Error("IsValidPeriod(\"2026-08\") = false, want true")
	}
	for _, input := range []string{"", "2026-13", "2026-08-31", "08-2026"} {
		if _, ok := IsValidPeriod(input); ok {
			t.Errorf("IsValidPeriod(%q) = true, want false", input)
		}
	}
}
