package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mailconf/internal/model"
	"github.com/mailconf/internal/store"
)

type configStore interface {
	Get(code string) (*model.EmailConfig, error)
	Put(code string, cfg *model.EmailConfig)
	Delete(code string) error
	List() []string
}

// smtpChecker delivers a test message using a stored configuration.
type smtpChecker interface {
	Check(cfg *model.EmailConfig) error
}

// ConfigHandler serves the per-organization email configuration API.
type ConfigHandler struct {
	BaseHandler
	store  configStore
	mailer smtpChecker
}

func NewConfigHandler(logger *slog.Logger, st configStore, m smtpChecker) *ConfigHandler {
	return &ConfigHandler{BaseHandler: BaseHandler{Logger: logger}, store: st, mailer: m}
}

// Get returns the configuration for one organization.
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	cfg, err := h.store.Get(code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFoundResponse(w, r, code)
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	h.configResponse(w, r, cfg, "Configuration retrieved successfully")
}

// Create stores a configuration for an organization, silently replacing
// any existing entry under the same code.
func (h *ConfigHandler) Create(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	cfg, ok := h.decodeConfig(w, r)
	if !ok {
		return
	}
	if cfg.OrganizationCode != code {
		h.errorResponse(w, r, http.StatusBadRequest, "Organization code mismatch")
		return
	}

	h.store.Put(code, cfg)
	h.configResponse(w, r, cfg, "Configuration created successfully")
}

// Update replaces the configuration for an organization that already
// has one. Storage semantics are identical to Create apart from the
// existence check.
func (h *ConfigHandler) Update(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	cfg, ok := h.decodeConfig(w, r)
	if !ok {
		return
	}
	if _, err := h.store.Get(code); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFoundResponse(w, r, code)
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}
	if cfg.OrganizationCode != code {
		h.errorResponse(w, r, http.StatusBadRequest, "Organization code mismatch")
		return
	}

	h.store.Put(code, cfg)
	h.configResponse(w, r, cfg, "Configuration updated successfully")
}

// Delete removes the configuration for one organization.
func (h *ConfigHandler) Delete(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.store.Delete(code); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFoundResponse(w, r, code)
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	env := envelope{
		"success":   true,
		"message":   fmt.Sprintf("Configuration deleted for organization: %s", code),
		"timestamp": time.Now().UTC(),
	}
	if err := h.writeJSON(w, http.StatusOK, env, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// List returns every organization code with a stored configuration.
func (h *ConfigHandler) List(w http.ResponseWriter, r *http.Request) {
	codes := h.store.List()

	env := envelope{
		"organizations": codes,
		"count":         len(codes),
		"timestamp":     time.Now().UTC(),
	}
	if err := h.writeJSON(w, http.StatusOK, env, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// Check sends a test message using the stored configuration so an
// operator can verify the credentials actually deliver mail.
func (h *ConfigHandler) Check(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	cfg, err := h.store.Get(code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFoundResponse(w, r, code)
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	if err := h.mailer.Check(cfg); err != nil {
		h.logError(r, err)
		h.errorResponse(w, r, http.StatusBadGateway, "SMTP check failed: "+err.Error())
		return
	}

	env := envelope{
		"success":   true,
		"message":   fmt.Sprintf("Test message sent from %s", cfg.FromEmail),
		"timestamp": time.Now().UTC(),
	}
	if err := h.writeJSON(w, http.StatusOK, env, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// decodeConfig reads and validates an EmailConfig body. On failure it
// writes the error response and returns ok=false. Malformed JSON is a
// 400; type mismatches and field-rule violations are a 422.
func (h *ConfigHandler) decodeConfig(w http.ResponseWriter, r *http.Request) (*model.EmailConfig, bool) {
	var cfg model.EmailConfig
	if err := h.readJSON(w, r, &cfg); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field := typeErr.Field
			if field == "" {
				field = "body"
			}
			h.failedValidationResponse(w, r, map[string]string{field: "contains an incorrect JSON type"})
			return nil, false
		}
		h.badRequestResponse(w, r, err)
		return nil, false
	}

	if errs := cfg.Validate(); errs != nil {
		h.failedValidationResponse(w, r, errs)
		return nil, false
	}

	return &cfg, true
}

func (h *ConfigHandler) notFoundResponse(w http.ResponseWriter, r *http.Request, code string) {
	message := fmt.Sprintf("Configuration not found for organization: %s", code)
	h.errorResponse(w, r, http.StatusNotFound, message)
}

func (h *ConfigHandler) configResponse(w http.ResponseWriter, r *http.Request, cfg *model.EmailConfig, message string) {
	env := envelope{
		"success":   true,
		"data":      cfg,
		"message":   message,
		"timestamp": time.Now().UTC(),
	}
	if err := h.writeJSON(w, http.StatusOK, env, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
