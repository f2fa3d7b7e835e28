// Package render writes command results as a table, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an output format name.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat parses a -format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be table, json, or yaml", s)
	}
}

// Renderer writes values in one format.
type Renderer struct {
	w      io.Writer
	format Format
}

// New creates a renderer writing to w.
func New(w io.Writer, format Format) *Renderer {
	if format == "" {
		format = FormatTable
	}
	return &Renderer{w: w, format: format}
}

// Format returns the output format.
func (r *Renderer) Format() Format {
	return r.format
}

// Render writes v. Tables accept a struct, a pointer to one, or a slice of
// either; a single struct is shown as FIELD/VALUE rows and an empty slice
// writes nothing.
func (r *Renderer) Render(v any) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)

	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()

	default:
		return r.table(v)
	}
}

func (r *Renderer) table(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return nil
		}
		elemType := rv.Type().Elem()
		for elemType.Kind() == reflect.Pointer {
			elemType = elemType.Elem()
		}
		if elemType.Kind() != reflect.Struct {
			return r.lines(rv)
		}
		cols := columnsOf(elemType)
		rows := make([][]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			rows = append(rows, rowOf(rv.Index(i), cols))
		}
		return newTable(r.w, headersOf(cols), rows)

	case reflect.Struct:
		cols := columnsOf(rv.Type())
		row := rowOf(rv, cols)
		rows := make([][]string, len(cols))
		for i, c := range cols {
			rows[i] = []string{header(c.name), row[i]}
		}
		return newTable(r.w, []string{"field", "value"}, rows)

	default:
		_, err := fmt.Fprintln(r.w, formatValue(rv))
		return err
	}
}

func (r *Renderer) lines(rv reflect.Value) error {
	for i := 0; i < rv.Len(); i++ {
		if _, err := fmt.Fprintln(r.w, formatValue(rv.Index(i))); err != nil {
			return err
		}
	}
	return nil
}
