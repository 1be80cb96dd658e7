package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

const unknownFieldPrefix = "json: unknown field "

// DecodeJSON strictly decodes body into a new T and validates it.
// An empty body decodes as an empty object. Keys must match a `json` tag of T
// exactly and the body must hold a single JSON value.
func DecodeJSON[T any](body io.Reader) (*T, Errors) {
	out := new(T)
	if body != nil {
		raw, err := io.ReadAll(body)
		if err != nil {
			return nil, Errors{{Path: []string{}, Message: "Invalid JSON"}}
		}
		if len(bytes.TrimSpace(raw)) > 0 {
			if errs := decodeStrict(raw, out); errs != nil {
				return nil, errs
			}
		}
	}
	if errs := Struct(out); errs != nil {
		return nil, errs
	}
	return out, nil
}

func decodeStrict(raw []byte, out any) Errors {
	dec := json.NewDecoder(bytes.NewReader(raw))
	var msg json.RawMessage
	if err := dec.Decode(&msg); err != nil {
		return decodeError(err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return Errors{{Path: []string{}, Message: "Invalid JSON"}}
	}

	if msg[0] == '{' {
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(msg, &keys); err != nil {
			return decodeError(err)
		}
		declared := jsonNames(reflect.TypeOf(out).Elem())
		unknown := make([]string, 0)
		for k := range keys {
			if !declared[k] {
				unknown = append(unknown, k)
			}
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			return Errors{{Path: []string{unknown[0]}, Message: fmt.Sprintf("Unrecognized key: %q", unknown[0])}}
		}
	}

	dec = json.NewDecoder(bytes.NewReader(msg))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return decodeError(err)
	}
	return nil
}

// jsonNames lists the exact keys encoding/json would read into t.
func jsonNames(t reflect.Type) map[string]bool {
	names := map[string]bool{}
	if t.Kind() != reflect.Struct {
		return names
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = sf.Name
		}
		names[name] = true
	}
	return names
}

func decodeError(err error) Errors {
	var (
		syn *json.SyntaxError
		typ *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &syn), errors.Is(err, io.ErrUnexpectedEOF):
		return Errors{{Path: []string{}, Message: "Invalid JSON"}}
	case errors.As(err, &typ):
		path := []string{}
		if typ.Field != "" {
			path = strings.Split(typ.Field, ".")
		}
		return Errors{{Path: path, Message: fmt.Sprintf("Expected %s, received %s", kindName(typ.Type), typ.Value)}}
	case strings.HasPrefix(err.Error(), unknownFieldPrefix):
		key, uerr := strconv.Unquote(strings.TrimPrefix(err.Error(), unknownFieldPrefix))
		if uerr != nil {
			key = strings.Trim(strings.TrimPrefix(err.Error(), unknownFieldPrefix), `"`)
		}
		return Errors{{Path: []string{key}, Message: fmt.Sprintf("Unrecognized key: %q", key)}}
	default:
		return Errors{{Path: []string{}, Message: err.Error()}}
	}
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

// DecodeQuery coerces the `form`-tagged fields of T from q and validates the result.
// Keys T does not declare are ignored. Supported field kinds are string, bool,
// integers, and pointers to them (left nil when the key is absent).
func DecodeQuery[T any](q url.Values) (*T, Errors) {
	out := new(T)
	rv := reflect.ValueOf(out).Elem()
	if rv.Kind() != reflect.Struct {
		panic("validation: DecodeQuery needs a struct type")
	}
	rt := rv.Type()

	var errs Errors
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name, _, _ := strings.Cut(sf.Tag.Get("form"), ",")
		if !sf.IsExported() || name == "" || name == "-" || !q.Has(name) {
			continue
		}
		if err := coerce(rv.Field(i), q.Get(name)); err != nil {
			msg := sf.Tag.Get("msg")
			if msg == "" {
				msg = err.Error()
			}
			errs = append(errs, FieldError{Path: []string{name}, Message: msg})
		}
	}
	if errs != nil {
		return nil, errs
	}
	if errs := Struct(out); errs != nil {
		return nil, errs
	}
	return out, nil
}

func coerce(fv reflect.Value, raw string) error {
	if fv.Kind() == reflect.Pointer {
		ptr := reflect.New(fv.Type().Elem())
		if err := coerce(ptr.Elem(), raw); err != nil {
			return err
		}
		fv.Set(ptr)
		return nil
	}
	raw = strings.TrimSpace(raw)
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("Expected boolean, received %q", raw)
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, fv.Type().Bits())
		if err != nil {
			return fmt.Errorf("Expected number, received %q", raw)
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, fv.Type().Bits())
		if err != nil {
			return fmt.Errorf("Expected number, received %q", raw)
		}
		fv.SetUint(n)
	default:
		return fmt.Errorf("unsupported query field kind %s", fv.Kind())
	}
	return nil
}
