package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"disc-score/internal/scoring"
)

func readJSON(body io.Reader, dest any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeRuleError maps rule-of-play rejections to 422 with the rule's own
// wording; anything else is treated as an internal failure.
func writeRuleError(w http.ResponseWriter, err error, fallback string) {
	var verr *scoring.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusUnprocessableEntity, verr.Reason)
		return
	}
	writeError(w, http.StatusInternalServerError, fallback)
}
