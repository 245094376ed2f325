// Package binder fills request structs from query strings and route parameters.
//
// Fields opt in with `query:"name"` or `path:"name"` tags; `-` skips a field.
// Supported field types are string, bool, the sized int/uint/float kinds,
// pointers to those (for optional values) and slices (repeated or
// comma-separated values).
package binder

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

func structValue(v any, errKind error) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: target must be a non-nil pointer", errKind)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: target must be a pointer to struct", errKind)
	}
	return rv, nil
}

// bindToStruct copies values keyed by the tag name into v.
func bindToStruct(v any, tag string, values map[string][]string, errKind error) error {
	rv, err := structValue(v, errKind)
	if err != nil {
		return err
	}
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}
		name, skip := parseFieldTag(sf, tag)
		if skip {
			continue
		}
		vals, ok := values[name]
		if !ok || len(vals) == 0 {
			continue
		}
		if err := setFieldValue(field, sf.Type, vals); err != nil {
			return fmt.Errorf("%w: %s: %v", errKind, name, err)
		}
	}
	return nil
}

// parseFieldTag returns the parameter name for sf under tag. Untagged fields
// are skipped so that several binders can share one struct.
func parseFieldTag(sf reflect.StructField, tag string) (string, bool) {
	raw, ok := sf.Tag.Lookup(tag)
	if !ok || raw == "-" {
		return "", true
	}
	name, _, _ := strings.Cut(raw, ",")
	if name == "" {
		name = strings.ToLower(sf.Name)
	}
	return name, false
}

func setFieldValue(field reflect.Value, typ reflect.Type, vals []string) error {
	switch typ.Kind() {
	case reflect.Pointer:
		elem := reflect.New(typ.Elem())
		if err := setFieldValue(elem.Elem(), typ.Elem(), vals); err != nil {
			return err
		}
		field.Set(elem)
		return nil
	case reflect.Slice:
		var parts []string
		for _, v := range vals {
			for p := range strings.SplitSeq(v, ",") {
				if p = strings.TrimSpace(p); p != "" {
					parts = append(parts, p)
				}
			}
		}
		slice := reflect.MakeSlice(typ, len(parts), len(parts))
		for i, p := range parts {
			if err := setScalar(slice.Index(i), typ.Elem(), p); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	default:
		return setScalar(field, typ, vals[0])
	}
}

var errUnsupportedType = errors.New("unsupported field type")

func setScalar(field reflect.Value, typ reflect.Type, s string) error {
	switch typ.Kind() {
	case reflect.String:
		field.SetString(s)
	case reflect.Bool:
		if s == "" || s == "on" {
			field.SetBool(s == "on")
			return nil
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, typ.Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, typ.Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, typ.Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("%w: %s", errUnsupportedType, typ)
	}
	return nil
}
