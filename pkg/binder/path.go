package binder

import (
	"fmt"
	"net/http"
)

// Path binds fields tagged `path:"name"` using extractor, typically chi.URLParam.
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrInvalidPath)
		}
		rv, err := structValue(v, ErrInvalidPath)
		if err != nil {
			return err
		}
		rt := rv.Type()

		for i := range rv.NumField() {
			field := rv.Field(i)
			fieldType := rt.Field(i)
			if !field.CanSet() {
				continue
			}
			name, ok := tagParam(fieldType, "path")
			if !ok {
				continue
			}
			value := extractor(r, name)
			if value == "" {
				continue
			}
			if err := setFieldValue(field, fieldType.Type, []string{value}); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrInvalidPath, fieldType.Name, err)
			}
		}
		return nil
	}
}
