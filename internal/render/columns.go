package render

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
)

type column struct {
	name  string
	index []int
}

var timeType = reflect.TypeOf(time.Time{})

// columnsOf lists exported fields by their JSON name. Fields tagged
// json:"-" or table:"-" are skipped.
func columnsOf(t reflect.Type) []column {
	var cols []column
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		if f.Tag.Get("table") == "-" {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			jsonName, _, _ := strings.Cut(tag, ",")
			if jsonName == "-" {
				continue
			}
			if jsonName != "" {
				name = jsonName
			}
		}
		cols = append(cols, column{name: name, index: f.Index})
	}
	return cols
}

// header turns "organizationTypeId" into "organization type id".
func header(name string) string {
	return strcase.ToDelimited(name, ' ')
}

func headersOf(cols []column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = header(c.name)
	}
	return out
}

func rowOf(v reflect.Value, cols []column) []string {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return make([]string, len(cols))
		}
		v = v.Elem()
	}
	row := make([]string, len(cols))
	for i, c := range cols {
		row[i] = formatValue(v.FieldByIndex(c.index))
	}
	return row
}

func formatValue(v reflect.Value) string {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	if v.Type() == timeType {
		t := v.Interface().(time.Time)
		if t.IsZero() {
			return ""
		}
		return t.Format(time.RFC3339)
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = formatValue(v.Index(i))
		}
		return strings.Join(parts, ", ")
	case reflect.String:
		return v.String()
	default:
		return fmt.Sprint(v.Interface())
	}
}
