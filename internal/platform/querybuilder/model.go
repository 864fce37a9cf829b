package querybuilder

import (
	"errors"
	"reflect"
	"strings"
)

// InsertModel builds a single-row INSERT from the exported `db`-tagged
// fields of model. Fields tagged "-" or untagged are skipped.
func InsertModel(table string, model any) (string, []any, error) {
	if strings.TrimSpace(table) == "" {
		return "", nil, errors.New("querybuilder: insert needs a table")
	}
	cols, vals, err := dbFields(model)
	if err != nil {
		return "", nil, err
	}

	var w writer
	w.text("INSERT INTO ", table, " (", strings.Join(cols, ", "), ") VALUES (")
	for i, v := range vals {
		if i > 0 {
			w.text(", ")
		}
		w.bind(v)
	}
	w.text(")")
	return w.result()
}

func dbFields(model any) ([]string, []any, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil, errors.New("querybuilder: nil model")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, nil, errors.New("querybuilder: model must be a struct")
	}

	t := v.Type()
	var cols []string
	var vals []any
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		cols = append(cols, name)
		vals = append(vals, v.Field(i).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, errors.New("querybuilder: model has no db columns")
	}
	return cols, vals, nil
}
