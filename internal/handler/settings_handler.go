package handler

import (
	"net/http"

	"stockroom/internal/model"
	"stockroom/internal/service"

	"github.com/rs/zerolog"
)

type settingsRequest struct {
	CompanyName *string `json:"companyName"`
}

type logoResponse struct {
	Success bool    `json:"success"`
	Logo    *string `json:"logo"`
}

// SettingsHandler handles the company profile endpoints.
type SettingsHandler struct {
	service      service.SettingsService
	maxBodyBytes int64
	logger       zerolog.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(service service.SettingsService, maxBodyBytes int64, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		service:      service,
		maxBodyBytes: maxBodyBytes,
		logger:       logger.With().Str("handler", "settings").Logger(),
	}
}

// Get handles GET /api/settings requests.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// Update handles PUT /api/settings requests.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	settings, err := h.service.UpdateCompanyName(r.Context(), req.CompanyName)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UploadLogo handles POST /api/settings/logo requests.
func (h *SettingsHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r, h.maxBodyBytes); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	file, err := readUpload(r, "logo")
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	if file == nil {
		writeDomainError(w, model.NewDomainError(model.ErrCodeInvalidUpload, "No logo file uploaded"), h.logger)
		return
	}

	settings, err := h.service.UploadLogo(r.Context(), *file)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, logoResponse{Success: true, Logo: settings.Logo})
}
