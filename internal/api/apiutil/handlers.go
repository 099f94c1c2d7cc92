package apiutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/tajhans/camber-scouting/internal/api/authz"
)

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteError emits the JSON error envelope shared by every endpoint.
// Storage internals never reach the caller; they are logged where the
// failure happened.
func WriteError(w http.ResponseWriter, status int, message string) {
	if err := WriteJSON(w, status, map[string]string{"error": message}); err != nil {
		log.Error().Err(err).Msg("Failed to write error response")
	}
}

// RequireUser resolves the authenticated user from the request context
// and writes a 401 envelope when it is absent. Handlers bail out when
// the second return value is false, before any data access.
func RequireUser(w http.ResponseWriter, r *http.Request) (*authz.AuthUser, bool) {
	user, err := authz.RequireUser(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Warn().
			Str("path", r.URL.Path).
			Msg("Request rejected: unauthenticated")
		WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	return user, true
}
