// Package api provides HTTP handlers, middleware, and routing for the user settings service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CreativeUnicorns/usersettings"
)

// languagePayload is the request and response body for the language endpoints.
type languagePayload struct {
	Language usersettings.Language `json:"language"`
}

// settingsSnapshot is the response body for the combined settings endpoint.
// Language stays null until a language is known for the user.
type settingsSnapshot struct {
	Display  usersettings.DisplaySettings `json:"display"`
	Language *usersettings.Language       `json:"language"`
}

// handleGetSettingsSnapshot returns the cached values without a store round-trip.
func (s *Server) handleGetSettingsSnapshot(w http.ResponseWriter, r *http.Request) {
	cache := s.cacheFor(chi.URLParam(r, "userID"))

	snapshot := settingsSnapshot{Display: cache.CurrentDisplaySettings()}
	if language, err := cache.CurrentLanguage(); err == nil {
		snapshot.Language = &language
	}

	s.respondWithJSON(w, r, http.StatusOK, snapshot)
}

// handleGetDisplaySettings fetches the user's display settings fresh from the store.
func (s *Server) handleGetDisplaySettings(w http.ResponseWriter, r *http.Request) {
	cache := s.cacheFor(chi.URLParam(r, "userID"))

	settings, err := cache.GetDisplaySettings(r.Context())
	if err != nil {
		s.respondWithSettingsError(w, r, "Failed to get display settings", err)
		return
	}

	s.respondWithJSON(w, r, http.StatusOK, settings)
}

// handleSetDisplaySettings validates and persists new display settings.
func (s *Server) handleSetDisplaySettings(w http.ResponseWriter, r *http.Request) {
	cache := s.cacheFor(chi.URLParam(r, "userID"))

	// Limit the size of the request body to 1MB
	r.Body = http.MaxBytesReader(w, r.Body, 1024*1024)

	var settings usersettings.DisplaySettings
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&settings); err != nil {
		s.respondWithError(w, r, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	if err := cache.SetDisplaySettings(r.Context(), settings); err != nil {
		s.respondWithSettingsError(w, r, "Failed to set display settings", err)
		return
	}

	s.respondWithJSON(w, r, http.StatusOK, settings)
}

// handleGetLanguage fetches the user's language fresh from the store.
func (s *Server) handleGetLanguage(w http.ResponseWriter, r *http.Request) {
	cache := s.cacheFor(chi.URLParam(r, "userID"))

	language, err := cache.GetLanguage(r.Context())
	if err != nil {
		s.respondWithSettingsError(w, r, "Failed to get language", err)
		return
	}

	s.respondWithJSON(w, r, http.StatusOK, languagePayload{Language: language})
}

// handleSetLanguage validates and persists a new language.
func (s *Server) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	cache := s.cacheFor(chi.URLParam(r, "userID"))

	// Limit the size of the request body to 1MB
	r.Body = http.MaxBytesReader(w, r.Body, 1024*1024)

	var payload languagePayload
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		s.respondWithError(w, r, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	if err := cache.SetLanguage(r.Context(), payload.Language); err != nil {
		s.respondWithSettingsError(w, r, "Failed to set language", err)
		return
	}

	s.respondWithJSON(w, r, http.StatusOK, payload)
}

// handleClearSettings removes the user's stored settings and reloads the cache.
func (s *Server) handleClearSettings(w http.ResponseWriter, r *http.Request) {
	cache := s.cacheFor(chi.URLParam(r, "userID"))

	if err := cache.ClearSettings(r.Context()); err != nil {
		s.respondWithSettingsError(w, r, "Failed to clear settings", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respondWithSettingsError maps facade and store errors onto HTTP statuses:
// invalid values map to 400, absent values to 404, everything else to 500.
func (s *Server) respondWithSettingsError(w http.ResponseWriter, r *http.Request, message string, err error) {
	switch {
	case errors.Is(err, usersettings.ErrInvalidValue):
		s.respondWithError(w, r, http.StatusBadRequest, message, err)
	case errors.Is(err, usersettings.ErrNotFound), errors.Is(err, usersettings.ErrNoValue):
		s.respondWithError(w, r, http.StatusNotFound, message, err)
	default:
		s.respondWithError(w, r, http.StatusInternalServerError, message, err)
	}
}

// respondWithError is a helper to send JSON error responses.
func (s *Server) respondWithError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	resp := map[string]interface{}{
		"error": map[string]string{
			"message": message,
		},
	}
	if err != nil {
		resp["error"].(map[string]string)["details"] = err.Error()
	}
	s.logger.Error("API Error", "status", status, "message", message, "path", r.URL.Path, "error", err)
	respondWithJSONRaw(w, status, resp)
}

// respondWithJSON is a helper to send JSON responses.
func (s *Server) respondWithJSON(w http.ResponseWriter, _ *http.Request, status int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("Failed to marshal JSON response", "error", err, "payload", payload)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"Failed to marshal response"}}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// respondWithJSONRaw is a lower-level helper, useful when payload is already a map for error responses.
func respondWithJSONRaw(w http.ResponseWriter, status int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"Critical: Failed to marshal error response"}}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
