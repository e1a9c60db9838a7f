// ABOUTME: Field-level validation functions for console forms and API payloads
// ABOUTME: Each check returns a Result with a user-facing message instead of an error

package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MaxNameLength       = 100
	MaxEmailLength      = 254
	MaxEmailLocalLength = 64
	MinPhoneDigits      = 6
	MaxPhoneDigits      = 14
	MinUsernameLength   = 3
	MaxUsernameLength   = 50
	MinPasswordLength   = 6
	MinGrade            = 0.0
	MaxGrade            = 10.0
)

// dniLetters is the checksum alphabet indexed by number mod 23.
const dniLetters = "TRWAGMYFPDXBNJZSQVHLCKE"

var (
	namePattern       = regexp.MustCompile(`^[a-zA-ZáéíóúñÁÉÍÓÚÑ\s]+$`)
	dniPattern        = regexp.MustCompile(`(?i)^[0-9]{8}[TRWAGMYFPDXBNJZSQVHLCKE]$`)
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneCharsPattern = regexp.MustCompile(`^[0-9+\-\s().]+$`)
)

// Result is the outcome of a single field check.
type Result struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message"`
}

func ok(msg string) Result   { return Result{IsValid: true, Message: msg} }
func fail(msg string) Result { return Result{IsValid: false, Message: msg} }

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// Name accepts letters (including Spanish accents) and spaces.
func Name(name string) Result {
	if blank(name) {
		return fail("Este campo es obligatorio")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fail(fmt.Sprintf("Máximo %d caracteres", MaxNameLength))
	}
	if !namePattern.MatchString(name) {
		return fail("Solo se permiten letras, acentos y espacios")
	}
	return ok("✓ Válido")
}

// NationalID checks a DNI: eight digits plus the checksum letter for number mod 23.
func NationalID(dni string) Result {
	if blank(dni) {
		return fail("El DNI es obligatorio")
	}
	if !dniPattern.MatchString(dni) {
		return fail("Formato: 8 números + 1 letra (ej: 12345678Z)")
	}
	n, err := strconv.Atoi(dni[:8])
	if err != nil {
		return fail("Formato: 8 números + 1 letra (ej: 12345678Z)")
	}
	want := dniLetters[n%23]
	if got := strings.ToUpper(dni[8:])[0]; got != want {
		return fail(fmt.Sprintf("La letra debería ser %c", want))
	}
	return ok("✓ DNI válido")
}

// DNILetter returns the checksum letter for the given number.
func DNILetter(n int) byte {
	if n < 0 {
		n = -n
	}
	return dniLetters[n%23]
}

func Email(email string) Result {
	if blank(email) {
		return fail("El email es obligatorio")
	}
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return fail(fmt.Sprintf("Máximo %d caracteres", MaxEmailLength))
	}
	local, _, _ := strings.Cut(email, "@")
	if utf8.RuneCountInString(local) > MaxEmailLocalLength {
		return fail(fmt.Sprintf("La parte local no puede superar %d caracteres", MaxEmailLocalLength))
	}
	if !emailPattern.MatchString(email) {
		return fail("Formato de email inválido")
	}
	if strings.Contains(email, "..") {
		return fail("No se permiten puntos consecutivos")
	}
	return ok("✓ Email válido")
}

// Phone is optional. When present its digit count must be within
// [MinPhoneDigits, MaxPhoneDigits].
func Phone(phone string) Result {
	return PhoneWithin(phone, MinPhoneDigits, MaxPhoneDigits)
}

// PhoneWithin applies the phone rules with caller-supplied digit bounds, for
// forms that enforce a narrower national format.
func PhoneWithin(phone string, minDigits, maxDigits int) Result {
	if blank(phone) {
		return ok("Campo opcional")
	}
	if !phoneCharsPattern.MatchString(phone) {
		return fail("Solo números, espacios, guiones, puntos, paréntesis y +")
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < minDigits {
		return fail(fmt.Sprintf("Mínimo %d dígitos", minDigits))
	}
	if digits > maxDigits {
		return fail(fmt.Sprintf("Máximo %d dígitos", maxDigits))
	}
	return ok("✓ Teléfono válido")
}

func Username(username string) Result {
	if blank(username) {
		return fail("El usuario es obligatorio")
	}
	n := utf8.RuneCountInString(username)
	if n < MinUsernameLength {
		return fail(fmt.Sprintf("Mínimo %d caracteres", MinUsernameLength))
	}
	if n > MaxUsernameLength {
		return fail(fmt.Sprintf("Máximo %d caracteres", MaxUsernameLength))
	}
	return ok("✓ Usuario válido")
}

func Password(password string) Result {
	if blank(password) {
		return fail("La contraseña es obligatoria")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fail(fmt.Sprintf("Mínimo %d caracteres", MinPasswordLength))
	}
	return ok("✓ Contraseña válida")
}

// Grade accepts any finite number in [0, 10].
func Grade(grade float64) Result {
	if math.IsNaN(grade) || math.IsInf(grade, 0) {
		return fail("La nota debe ser un número válido")
	}
	if grade < MinGrade || grade > MaxGrade {
		return fail(fmt.Sprintf("La nota debe estar entre %g y %g", MinGrade, MaxGrade))
	}
	return ok("✓ Nota válida")
}

func Price(price float64) Result {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return fail("El precio debe ser un número válido")
	}
	if price < 0 {
		return fail("El precio no puede ser negativo")
	}
	return ok("✓ Precio válido")
}
