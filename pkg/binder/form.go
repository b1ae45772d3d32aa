package binder

import (
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"reflect"
	"strings"
)

// DefaultMaxMemory bounds the part of a multipart form kept in memory.
const DefaultMaxMemory = 10 << 20

// maxBoundaryLength is the RFC 2046 limit.
const maxBoundaryLength = 70

var fileHeaderType = reflect.TypeOf((*multipart.FileHeader)(nil))

// Form binds urlencoded and multipart bodies. Fields tagged `form:"name"`
// receive values; fields tagged `file:"name"` of type *multipart.FileHeader
// or []*multipart.FileHeader receive uploads with sanitized filenames.
//
// Requests without a body, and JSON bodies, are not applicable.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if r.Method == http.MethodGet || r.Method == http.MethodHead || contentType == "" {
			return ErrBinderNotApplicable
		}

		mediaType, params, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: malformed content type", ErrInvalidForm)
		}

		var (
			values map[string][]string
			files  map[string][]*multipart.FileHeader
		)

		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.PostForm

		case "multipart/form-data":
			if !validBoundary(params["boundary"]) {
				return fmt.Errorf("%w: invalid boundary parameter", ErrInvalidForm)
			}
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.MultipartForm.Value
			files = r.MultipartForm.File

		case "application/json":
			return ErrBinderNotApplicable

		default:
			return fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded or multipart/form-data", ErrUnsupportedMediaType, mediaType)
		}

		if err := bindToStruct(v, "form", values, ErrInvalidForm); err != nil {
			return err
		}
		return bindFiles(v, files)
	}
}

func bindFiles(v any, files map[string][]*multipart.FileHeader) error {
	if len(files) == 0 {
		return nil
	}
	rv, err := structValue(v, ErrInvalidForm)
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
		name, ok := tagParam(fieldType, "file")
		if !ok {
			continue
		}
		headers := files[name]
		if len(headers) == 0 {
			continue
		}
		for _, fh := range headers {
			fh.Filename = sanitizeFilename(fh.Filename)
		}

		switch {
		case fieldType.Type == fileHeaderType:
			field.Set(reflect.ValueOf(headers[0]))
		case fieldType.Type.Kind() == reflect.Slice && fieldType.Type.Elem() == fileHeaderType:
			field.Set(reflect.ValueOf(headers))
		default:
			return fmt.Errorf("%w: field %s: unsupported file field type %v", ErrInvalidForm, fieldType.Name, fieldType.Type)
		}
	}
	return nil
}

// validBoundary accepts the RFC 2046 bchars.
func validBoundary(b string) bool {
	if b == "" || len(b) > maxBoundaryLength || strings.HasSuffix(b, " ") {
		return false
	}
	for _, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune("'()+_,-./:=? ", c):
		default:
			return false
		}
	}
	return true
}

// sanitizeFilename strips directories and NUL bytes from client filenames.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "\x00", "")
	if name == "." || name == ".." || name == "" || name == "/" {
		return "unnamed"
	}
	return name
}
