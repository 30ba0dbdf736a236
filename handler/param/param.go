// Package param binds request parameters from the query string and JSON body
// into a tagged struct, then validates it.
package param

import (
	"encoding/json"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
	decoder.SetAliasTag("json")
}

// Binding fills v from the request. Query values bind first, a JSON body
// overrides them, and govalidator tags run last.
func Binding(r *http.Request, v interface{}) error {
	if err := r.ParseForm(); err != nil {
		return err
	}

	if len(r.Form) > 0 {
		if err := decoder.Decode(v, r.Form); err != nil {
			return err
		}
	}

	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			return err
		}
	}

	if _, err := govalidator.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}
