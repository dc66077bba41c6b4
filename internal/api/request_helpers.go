// Package api provides HTTP handlers for the learning core.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Harmony-cloud-01/mandarin-app/internal/api/shared"
)

// validate is the shared request validator instance.
var validate = validator.New()

// decodeAndValidate decodes the request body into dst and runs struct
// validation. On failure it writes the error response and returns false;
// handlers should simply return.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return false
	}

	return true
}
