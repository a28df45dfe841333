package dto

import (
	"html"
	"reflect"
	"strings"
)

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field (including *string) of a struct pointer. Only for values the service
// itself stores and re-renders.
func SanitizeStruct(v interface{}) {
	applyToStrings(v, sanitize)
}

// TrimStruct trims whitespace on every exported string field (including
// *string) of a struct pointer. Processor-bound fields must pass through
// otherwise verbatim: escaping would corrupt names and addresses on the wire.
func TrimStruct(v interface{}) {
	applyToStrings(v, strings.TrimSpace)
}

func applyToStrings(v interface{}, transform func(string) string) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	transformFields(rv.Elem(), transform)
}

func transformFields(rv reflect.Value, transform func(string) string) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(transform(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(transform(elem.String()))
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
