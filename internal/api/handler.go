package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/inamate/sketchpad/internal/auth"
)

const maxBodySize = 1 << 20

const (
	defaultRenderWidth  = 800
	defaultRenderHeight = 600
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// origin returns the {origin} path variable if the request's token was
// issued for it.
func origin(r *http.Request) (string, *auth.Claims, error) {
	o := mux.Vars(r)["origin"]
	claims := auth.ClaimsFromContext(r.Context())
	if !claims.Allows(o) {
		return "", nil, ErrOriginMismatch
	}
	return o, claims, nil
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	o, _, err := origin(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	scene, err := h.service.Get(r.Context(), o)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("ETag", scene.ETag)
	if r.Header.Get("If-None-Match") == scene.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(scene.Data)
}

func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	o, claims, err := origin(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
		return
	}

	etag, err := h.service.Put(r.Context(), o, claims.ContextID, body, r.Header.Get("If-Match"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("ETag", etag)
	writeJSON(w, http.StatusOK, map[string]string{"etag": etag})
}

func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	o, _, err := origin(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	width, werr := queryFloat(r, "w", defaultRenderWidth)
	height, herr := queryFloat(r, "h", defaultRenderHeight)
	if werr != nil || herr != nil {
		handleServiceError(w, ErrInvalidSize)
		return
	}

	commands, err := h.service.Render(r.Context(), o, width, height)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, commands)
}

func queryFloat(r *http.Request, name string, def float64) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return strconv.ParseFloat(v, 64)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, ErrOriginMismatch):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	case errors.Is(err, ErrPreconditionFailed):
		writeJSON(w, http.StatusPreconditionFailed, map[string]string{"error": "scene changed"})
	case errors.Is(err, ErrInvalidState):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid scene state"})
	case errors.Is(err, ErrInvalidSize):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid render size"})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response", "status", status, "error", err)
	}
}
