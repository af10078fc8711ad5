package models

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
)

// NewValidator returns a validator that understands the nullable column types,
// so tags like `omitempty,gte=1` apply to the wrapped value.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(nullableValue, null.Int{}, null.Float64{}, null.String{}, Date{}, NullDate{})
	return v
}

// Present values are returned as pointers so a valid zero is not skipped by omitempty.
func nullableValue(field reflect.Value) interface{} {
	switch v := field.Interface().(type) {
	case null.Int:
		if v.Valid {
			return &v.Int
		}
	case null.Float64:
		if v.Valid {
			return &v.Float64
		}
	case null.String:
		if v.Valid {
			return &v.String
		}
	case Date:
		if v.IsZero() {
			return ""
		}
		return v.String()
	case NullDate:
		if v.Valid {
			s := v.Date.String()
			return &s
		}
	}
	return nil
}
