// ABOUTME: Struct validation for request payloads using go-playground/validator
// ABOUTME: Registers the console's field rules as custom tags with Spanish messages

package validate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
)

// FieldErrors maps a JSON field name to its failure messages.
type FieldErrors map[string][]string

func (fe FieldErrors) Error() string {
	return "datos inválidos: " + FormatFieldErrors(fe)
}

// FormatFieldErrors renders field errors as "field: a, b; other: c" with
// fields in lexical order.
func FormatFieldErrors(fe FieldErrors) string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(fe[f], ", ")))
	}
	return strings.Join(parts, "; ")
}

// custom tags and the fixed text used when a rule has no dynamic message
var customRules = []struct {
	tag   string
	text  string
	check func(reflect.Value) Result
}{
	{"name", "{0} solo admite letras, acentos y espacios", func(v reflect.Value) Result { return Name(v.String()) }},
	{"dni", "{0} no es un DNI válido", func(v reflect.Value) Result { return NationalID(v.String()) }},
	{"phone", "{0} no es un teléfono válido", func(v reflect.Value) Result { return Phone(v.String()) }},
	{"username", "{0} no es un usuario válido", func(v reflect.Value) Result { return Username(v.String()) }},
	{"grade", "{0} debe estar entre 0 y 10", func(v reflect.Value) Result { return Grade(numeric(v)) }},
	{"price", "{0} no puede ser negativo", func(v reflect.Value) Result { return Price(numeric(v)) }},
}

var (
	initOnce   sync.Once
	validate   *validator.Validate
	translator ut.Translator
	checks     = map[string]func(reflect.Value) Result{}
)

func numeric(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	}
	return 0
}

func setup() {
	_es := es.New()
	uni := ut.New(_es, _es)
	translator, _ = uni.GetTranslator("es")

	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = es_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	for _, rule := range customRules {
		check := rule.check
		checks[rule.tag] = check
		_ = validate.RegisterValidation(rule.tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field()).IsValid
		})
		registerTranslation(rule.tag, rule.text)
	}
}

func registerTranslation(tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Struct validates v against its `validate` tags. It returns nil or a
// FieldErrors value keyed by JSON field name.
func Struct(v any) error {
	initOnce.Do(setup)

	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		out[fe.Field()] = append(out[fe.Field()], message(fe))
	}
	return out
}

// message prefers the dynamic message of a custom rule (e.g. the expected DNI
// letter) over the static translation.
func message(fe validator.FieldError) string {
	if check, custom := checks[fe.Tag()]; custom {
		v := reflect.Indirect(reflect.ValueOf(fe.Value()))
		if r := check(v); !r.IsValid && r.Message != "" {
			return r.Message
		}
	}
	return fe.Translate(translator)
}
