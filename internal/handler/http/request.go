package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stafftrack/hrms-backend-go/internal/domain/request"
	"github.com/stafftrack/hrms-backend-go/internal/handler/http/response"
)

// RequestHandler serves both request kinds; the router binds each route
// group to a kind.
type RequestHandler interface {
	SubmitLeave(w http.ResponseWriter, r *http.Request)
	SubmitAdvance(w http.ResponseWriter, r *http.Request)
	Decide(kind request.Kind, stage request.Stage) http.HandlerFunc
	SupervisorQueue(kind request.Kind) http.HandlerFunc
	HRQueue(kind request.Kind) http.HandlerFunc
	AdminQueue(kind request.Kind) http.HandlerFunc
	Mine(kind request.Kind) http.HandlerFunc
	MarkSeen(kind request.Kind) http.HandlerFunc
}

type requestHandlerImpl struct {
	requestService request.Service
}

func NewRequestHandler(requestService request.Service) RequestHandler {
	return &requestHandlerImpl{
		requestService: requestService,
	}
}

// SubmitLeave implements RequestHandler.
func (h *requestHandlerImpl) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.requestService.SubmitLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// SubmitAdvance implements RequestHandler.
func (h *requestHandlerImpl) SubmitAdvance(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.requestService.SubmitAdvance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Advance request submitted", result)
}

// Decide implements RequestHandler.
func (h *requestHandlerImpl) Decide(kind request.Kind, stage request.Stage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req request.DecideRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
		req.ID = chi.URLParam(r, "id")
		req.Kind = kind

		result, err := h.requestService.Decide(r.Context(), stage, req)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		response.SuccessWithMessage(w, "Decision recorded", result)
	}
}

// SupervisorQueue implements RequestHandler.
func (h *requestHandlerImpl) SupervisorQueue(kind request.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := h.requestService.ListSupervisorQueue(r.Context(), kind)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, result)
	}
}

// HRQueue implements RequestHandler.
func (h *requestHandlerImpl) HRQueue(kind request.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := h.requestService.ListHRQueue(r.Context(), kind)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, result)
	}
}

// AdminQueue implements RequestHandler.
func (h *requestHandlerImpl) AdminQueue(kind request.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := h.requestService.ListAdminQueue(r.Context(), kind)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, result)
	}
}

// MarkSeen implements RequestHandler.
func (h *requestHandlerImpl) MarkSeen(kind request.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := h.requestService.MarkSeen(r.Context(), kind, id); err != nil {
			response.HandleError(w, err)
			return
		}

		response.SuccessWithMessage(w, "Request marked as seen", nil)
	}
}

// Mine implements RequestHandler.
func (h *requestHandlerImpl) Mine(kind request.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := h.requestService.ListMine(r.Context(), kind)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, result)
	}
}
