package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stafftrack/hrms-backend-go/internal/domain/identity"
	"github.com/stafftrack/hrms-backend-go/internal/handler/http/response"
)

type IdentityHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type identityHandlerImpl struct {
	identityService identity.Service
}

func NewIdentityHandler(identityService identity.Service) IdentityHandler {
	return &identityHandlerImpl{
		identityService: identityService,
	}
}

// Create implements IdentityHandler.
func (h *identityHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req identity.CreateIdentityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.identityService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Identity created", result)
}

// Get implements IdentityHandler.
func (h *identityHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.identityService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements IdentityHandler.
func (h *identityHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := identity.Filter{
		ActiveOnly: r.URL.Query().Get("active") == "true",
	}
	if role := r.URL.Query().Get("role"); role != "" {
		filter.Role = &role
	}

	result, err := h.identityService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Deactivate implements IdentityHandler.
func (h *identityHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.identityService.Deactivate(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Identity deactivated", nil)
}
