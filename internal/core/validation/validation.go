// Package validation decodes request payloads into typed schemas and reports
// field-level errors.
//
// Two policies exist side by side. JSON bodies are decoded strictly: unknown
// keys and type mismatches fail. Query strings are coerced: declared fields are
// parsed from their string form and undeclared keys are ignored.
//
// Schemas are plain structs. Rules live in `validate` tags (go-playground/validator).
// A `msg` tag replaces the message for every rule of a field, a `msg_<rule>` tag
// replaces it for one rule. Types implementing Normalizer are normalized after
// decoding and before rules run.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

type FieldError struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// Errors is ordered by field declaration, one entry per failing field.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		if len(fe.Path) == 0 {
			parts = append(parts, fe.Message)
			continue
		}
		parts = append(parts, strings.Join(fe.Path, ".")+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field builds a single-entry Errors for path.
func Field(path, msg string) Errors {
	return Errors{{Path: []string{path}, Message: msg}}
}

type Normalizer interface{ Normalize() }

type engine struct {
	v     *validator.Validate
	trans ut.Translator
}

var std = newEngine()

// custom rules and their default messages
var rules = []struct {
	tag  string
	fn   func(string) bool
	text string
}{
	{"upper", func(s string) bool { return strings.ContainsFunc(s, func(r rune) bool { return r >= 'A' && r <= 'Z' }) }, "{0} must contain at least 1 uppercase letter"},
	{"digit", func(s string) bool { return strings.ContainsFunc(s, func(r rune) bool { return r >= '0' && r <= '9' }) }, "{0} must contain at least 1 number"},
	{"nospace", func(s string) bool { return !strings.ContainsFunc(s, unicode.IsSpace) }, "{0} must not contain white spaces"},
}

func newEngine() *engine {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"json", "form"} {
			name, _, _ := strings.Cut(f.Tag.Get(key), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})

	locale := en.New()
	trans, _ := ut.New(locale, locale).GetTranslator("en")
	if err := entrans.RegisterDefaultTranslations(v, trans); err != nil {
		panic(fmt.Sprintf("validation: register translations: %v", err))
	}

	for _, r := range rules {
		fn := r.fn
		if err := v.RegisterValidation(r.tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("validation: register %s: %v", r.tag, err))
		}
		tag, text := r.tag, r.text
		_ = v.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				s, _ := t.T(tag, fe.Field())
				return s
			})
	}
	return &engine{v: v, trans: trans}
}

// Struct runs the rules of s. A nil result means s is valid.
func Struct(s any) Errors {
	if n, ok := s.(Normalizer); ok {
		n.Normalize()
	}
	err := std.v.Struct(s)
	if err == nil {
		return nil
	}
	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{{Path: []string{}, Message: err.Error()}}
	}
	root := reflect.TypeOf(s)
	out := make(Errors, 0, len(ves))
	for _, fe := range ves {
		out = append(out, FieldError{Path: fieldPath(fe.Namespace()), Message: std.message(root, fe)})
	}
	return out
}

func (e *engine) message(root reflect.Type, fe validator.FieldError) string {
	if sf, ok := structField(root, fe.StructNamespace()); ok {
		if m := sf.Tag.Get("msg_" + fe.Tag()); m != "" {
			return m
		}
		if m := sf.Tag.Get("msg"); m != "" {
			return m
		}
	}
	return fe.Translate(e.trans)
}

// fieldPath drops the root type name from a validator namespace.
func fieldPath(ns string) []string {
	parts := strings.Split(ns, ".")
	if len(parts) <= 1 {
		return []string{}
	}
	return parts[1:]
}

func structField(t reflect.Type, ns string) (reflect.StructField, bool) {
	var sf reflect.StructField
	parts := strings.Split(ns, ".")
	if len(parts) < 2 {
		return sf, false
	}
	for _, name := range parts[1:] {
		for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice || t.Kind() == reflect.Map {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return sf, false
		}
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		f, ok := t.FieldByName(name)
		if !ok {
			return sf, false
		}
		sf, t = f, f.Type
	}
	return sf, true
}
