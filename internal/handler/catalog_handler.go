package handler

import (
	"net/http"
	"strings"

	"stockroom/internal/service"

	"github.com/rs/zerolog"
)

type nameRequest struct {
	Name string `json:"name"`
}

// CatalogHandler serves one name list (categories or vendors). Mutations
// respond with {"success": true, <listKey>: [...]}.
type CatalogHandler struct {
	service service.CatalogService
	listKey string
	logger  zerolog.Logger
}

// NewCatalogHandler creates a handler whose responses carry the list under listKey.
func NewCatalogHandler(service service.CatalogService, listKey string, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		listKey: listKey,
		logger:  logger.With().Str("handler", strings.TrimSuffix(listKey, "s")).Logger(),
	}
}

// List handles GET requests for the whole list.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.List(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

// Add handles POST requests with a {"name": ...} body.
func (h *CatalogHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	names, err := h.service.Add(r.Context(), req.Name)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	h.writeList(w, names)
}

// Remove handles DELETE requests for /{name}.
func (h *CatalogHandler) Remove(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.Remove(r.Context(), pathParam(r, "name"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	h.writeList(w, names)
}

func (h *CatalogHandler) writeList(w http.ResponseWriter, names []string) {
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		h.listKey: names,
	})
}
