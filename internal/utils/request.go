package utils

import (
	"encoding/json"
	"net/http"
)

// DecodeJSONRequest decodes the request body into dst and writes a
// BadRequest envelope on failure. Callers return immediately on error.
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		WriteErrorResponse(w, r, http.StatusBadRequest, "Invalid request body", err.Error())
		return err
	}
	return nil
}
