package handlers

import (
	"encoding/json"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"github.com/iamLuCat/portfolio/internal/config"
	"github.com/iamLuCat/portfolio/internal/contact"
	"github.com/iamLuCat/portfolio/internal/metrics"
	"github.com/iamLuCat/portfolio/internal/middleware"
)

// maxContactBody caps the size of a submission
const maxContactBody = 64 << 10

// ContactHandler handles the contact form endpoints
type ContactHandler struct {
	service *contact.Service
	cfg     *config.Config
	logger  *zap.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(s *contact.Service, cfg *config.Config, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{service: s, cfg: cfg, logger: logger}
}

type contactResponse struct {
	ID    string        `json:"id,omitempty"`
	State contact.State `json:"state"`
	Error string        `json:"error,omitempty"`
}

// Submit handles POST /api/contact. It accepts JSON or a plain form post.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBody)

	req, err := decodeContact(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.service.Submit(r.Context(), middleware.ClientIP(r), req)
	metrics.ContactOutcome(outcome(err))
	if err != nil {
		h.logger.Info("Contact submission rejected",
			zap.String("submission_id", res.ID),
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err),
		)
		respondJSON(w, HTTPStatus(err), contactResponse{ID: res.ID, State: res.State, Error: userMessage(err)})
		return
	}
	respondJSON(w, http.StatusOK, contactResponse{ID: res.ID, State: res.State})
}

func decodeContact(r *http.Request) (contact.Request, error) {
	var req contact.Request
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}

	if err := r.ParseForm(); err != nil {
		return req, err
	}
	req.Name = r.PostForm.Get("name")
	req.Email = r.PostForm.Get("email")
	req.Message = r.PostForm.Get("message")
	req.Token = r.PostForm.Get("g-recaptcha-response")
	if req.Token == "" {
		req.Token = r.PostForm.Get("token")
	}
	return req, nil
}

type publicConfig struct {
	SiteKey         string `json:"siteKey"`
	BasePath        string `json:"basePath"`
	RelayConfigured bool   `json:"relayConfigured"`
}

// PublicConfig handles GET /api/config/public. No secret is included.
func (h *ContactHandler) PublicConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, publicConfig{
		SiteKey:         h.cfg.Recaptcha.SiteKey,
		BasePath:        h.cfg.Site.BasePath,
		RelayConfigured: h.service.Configured(),
	})
}
