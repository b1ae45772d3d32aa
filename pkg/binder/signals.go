package binder

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// Signals decodes Datastar signals into v using its json tags. Signals travel
// in the "datastar" query parameter on GET and as a JSON body otherwise.
func Signals() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if r.Method == http.MethodGet || r.Method == http.MethodDelete {
			if !r.URL.Query().Has("datastar") {
				return ErrBinderNotApplicable
			}
		} else {
			mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if mediaType != "application/json" || r.ContentLength == 0 {
				return ErrBinderNotApplicable
			}
		}

		if err := datastar.ReadSignals(r, v); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSignals, err)
		}
		return nil
	}
}
