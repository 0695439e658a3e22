package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var (
	errBadJSON       = errors.New("Invalid request body")
	errMissingFields = errors.New("Required fields missing or invalid")
)

// decodeValidate decodes the request body and checks `validate` struct tags.
func decodeValidate(r *http.Request, body any) error {
	if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		return errBadJSON
	}
	if err := validate.Struct(body); err != nil {
		return errMissingFields
	}
	return nil
}

// decodeStrict decodes the request body rejecting unknown fields.
func decodeStrict(r *http.Request, body any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(body); err != nil {
		return errBadJSON
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
