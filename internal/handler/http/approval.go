package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/remitdesk/backoffice-go/internal/domain/approval"
	"github.com/remitdesk/backoffice-go/internal/handler/http/middleware"
	"github.com/remitdesk/backoffice-go/internal/handler/http/response"
	approvalsvc "github.com/remitdesk/backoffice-go/internal/service/approval"
)

type ApprovalHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type ApprovalHandlerImpl struct {
	approvalService *approvalsvc.Service
}

func NewApprovalHandler(approvalService *approvalsvc.Service) ApprovalHandler {
	return &ApprovalHandlerImpl{approvalService: approvalService}
}

func (h *ApprovalHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req approval.CreateApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create approval decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.approvalService.Create(r.Context(), req, middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Approval request created successfully", resp)
}

func (h *ApprovalHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.approvalService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *ApprovalHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := approval.Filter{}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := q.Get("entity_type"); v != "" {
		filter.EntityType = &v
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	resp, err := h.approvalService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, resp.Data, &response.Meta{
		Page:       resp.Page,
		Limit:      resp.Limit,
		TotalItems: resp.TotalCount,
	})
}

func (h *ApprovalHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.approvalService.Approve(r.Context(), id, middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Approval request approved", resp)
}

func (h *ApprovalHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req approval.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.approvalService.Reject(r.Context(), req, middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Approval request rejected", resp)
}

func (h *ApprovalHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.approvalService.Cancel(r.Context(), id, middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Approval request cancelled", resp)
}
