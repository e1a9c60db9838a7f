// ABOUTME: Tests for field validation functions
// ABOUTME: Covers DNI checksum, email shape, phone digit bounds, grades and prices

package validate

import (
	"math"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"simple", "Juan", true},
		{"accents and spaces", "José María Núñez", true},
		{"empty", "", false},
		{"only spaces", "   ", false},
		{"digits", "Juan2", false},
		{"symbols", "Juan-Pérez", false},
		{"at limit", strings.Repeat("a", MaxNameLength), true},
		{"too long", strings.Repeat("a", MaxNameLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Name(tt.input); got.IsValid != tt.valid {
				t.Errorf("Name(%q) = %+v, want valid=%v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestNationalID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		valid   bool
		message string
	}{
		{"correct letter", "12345678Z", true, ""},
		{"lowercase letter", "12345678z", true, ""},
		{"wrong letter names expected", "12345678T", false, "La letra debería ser Z"},
		{"zero number", "00000000T", true, ""},
		{"too few digits", "1234567T", false, ""},
		{"letter not in alphabet", "12345678U", false, ""},
		{"empty", "", false, "El DNI es obligatorio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NationalID(tt.input)
			if got.IsValid != tt.valid {
				t.Fatalf("NationalID(%q) = %+v, want valid=%v", tt.input, got, tt.valid)
			}
			if tt.message != "" && got.Message != tt.message {
				t.Errorf("message = %q, want %q", got.Message, tt.message)
			}
		})
	}
}

func TestDNILetter(t *testing.T) {
	if got := DNILetter(12345678); got != 'Z' {
		// 12345678 mod 23 = 14
		t.Errorf("DNILetter(12345678) = %c, want Z", got)
	}
	if got := DNILetter(0); got != 'T' {
		t.Errorf("DNILetter(0) = %c, want T", got)
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"juan@email.com", true},
		{"a..b@example.com", false},
		{"no-at-sign.com", false},
		{"juan@localhost", false},
		{"with space@x.com", false},
		{"", false},
		{strings.Repeat("a", 65) + "@x.com", false},
		{strings.Repeat("a", 64) + "@x.com", true},
		{"a@" + strings.Repeat("b", 250) + ".com", false},
	}

	for _, tt := range tests {
		if got := Email(tt.input); got.IsValid != tt.valid {
			t.Errorf("Email(%q) = %+v, want valid=%v", tt.input, got, tt.valid)
		}
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"empty is optional", "", true},
		{"spanish mobile", "612 345 678", true},
		{"international", "+34 (612) 345-678", true},
		{"six digits", "123456", true},
		{"five digits", "12345", false},
		{"fourteen digits", "12345678901234", true},
		{"fifteen digits", "123456789012345", false},
		{"letters", "612abc678", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Phone(tt.input); got.IsValid != tt.valid {
				t.Errorf("Phone(%q) = %+v, want valid=%v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestPhoneWithin_NarrowerBounds(t *testing.T) {
	if got := PhoneWithin("123456", 9, 11); got.IsValid {
		t.Errorf("expected 6 digits to fail a [9,11] rule, got %+v", got)
	}
	if got := PhoneWithin("612345678", 9, 11); !got.IsValid {
		t.Errorf("expected 9 digits to pass a [9,11] rule, got %+v", got)
	}
}

func TestUsernameAndPassword(t *testing.T) {
	if Username("ab").IsValid {
		t.Error("two-character username should fail")
	}
	if !Username("abc").IsValid {
		t.Error("three-character username should pass")
	}
	if Username(strings.Repeat("u", 51)).IsValid {
		t.Error("51-character username should fail")
	}
	if Password("12345").IsValid {
		t.Error("five-character password should fail")
	}
	if !Password("123456").IsValid {
		t.Error("six-character password should pass")
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		grade float64
		valid bool
	}{
		{0, true},
		{10, true},
		{7.5, true},
		{-0.1, false},
		{10.1, false},
		{math.NaN(), false},
		{math.Inf(1), false},
	}

	for _, tt := range tests {
		if got := Grade(tt.grade); got.IsValid != tt.valid {
			t.Errorf("Grade(%v) = %+v, want valid=%v", tt.grade, got, tt.valid)
		}
	}
}

func TestPrice(t *testing.T) {
	if !Price(0).IsValid {
		t.Error("zero price should pass")
	}
	if !Price(19.99).IsValid {
		t.Error("positive price should pass")
	}
	if Price(-0.01).IsValid {
		t.Error("negative price should fail")
	}
	if Price(math.NaN()).IsValid {
		t.Error("NaN price should fail")
	}
}
