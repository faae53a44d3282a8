package listview

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"
)

// Column - колонка таблицы: либо имя поля, либо функция-аксессор.
// Render необязателен и получает "сырое" значение.
type Column[T any] struct {
	Header string
	Field  string
	Value  func(T) any
	Render func(v any) string
}

// Table не хранит состояния: строки - чистая функция от элементов.
type Table[T any] struct {
	Columns []Column[T]
	IDField string
	BaseURL string
}

type Row struct {
	Cells []string
	Link  string
}

func (t Table[T]) Headers() []string {
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Header
	}
	return headers
}

func (t Table[T]) Rows(items []T) []Row {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		row := Row{Cells: make([]string, len(t.Columns))}
		for i, c := range t.Columns {
			row.Cells[i] = t.cell(c, item)
		}
		if t.IDField != "" && t.BaseURL != "" {
			if id, ok := FieldValue(item, t.IDField); ok {
				row.Link = strings.TrimSuffix(t.BaseURL, "/") + "/" + Text(id)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func (t Table[T]) cell(c Column[T], item T) string {
	var v any
	switch {
	case c.Value != nil:
		v = c.Value(item)
	case c.Field != "":
		v, _ = FieldValue(item, c.Field)
	}
	if c.Render != nil {
		return c.Render(v)
	}
	return Text(v)
}

// Text - отображение значения ячейки по умолчанию.
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "Oui"
		}
		return "Non"
	case encoding.TextMarshaler:
		b, err := x.MarshalText()
		if err != nil {
			return ""
		}
		return string(b)
	case fmt.Stringer:
		return x.String()
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		return Text(rv.Elem().Interface())
	}
	if rv.Kind() == reflect.Slice {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = Text(rv.Index(i).Interface())
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}

// FieldValue ищет поле структуры по имени Go или по json-тегу.
func FieldValue(item any, name string) (any, bool) {
	rv := reflect.ValueOf(item)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	if f := rv.FieldByName(name); f.IsValid() && f.CanInterface() {
		return f.Interface(), true
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if tag == name {
			return rv.Field(i).Interface(), true
		}
	}
	return nil, false
}
