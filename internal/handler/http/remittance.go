package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/remitdesk/backoffice-go/internal/domain/remittance"
	"github.com/remitdesk/backoffice-go/internal/handler/http/middleware"
	"github.com/remitdesk/backoffice-go/internal/handler/http/response"
	remittancesvc "github.com/remitdesk/backoffice-go/internal/service/remittance"
)

type RemittanceHandler interface {
	RecordReceipt(w http.ResponseWriter, r *http.Request)
	ListReceipts(w http.ResponseWriter, r *http.Request)
	CloseDay(w http.ResponseWriter, r *http.Request)
	ListClosings(w http.ResponseWriter, r *http.Request)
}

type RemittanceHandlerImpl struct {
	remittanceService *remittancesvc.Service
}

func NewRemittanceHandler(remittanceService *remittancesvc.Service) RemittanceHandler {
	return &RemittanceHandlerImpl{remittanceService: remittanceService}
}

func (h *RemittanceHandlerImpl) RecordReceipt(w http.ResponseWriter, r *http.Request) {
	var req remittance.RecordReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RecordReceipt decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.remittanceService.RecordReceipt(r.Context(), req, middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Receipt recorded successfully", resp)
}

func (h *RemittanceHandlerImpl) ListReceipts(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	resp, err := h.remittanceService.ListReceipts(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *RemittanceHandlerImpl) CloseDay(w http.ResponseWriter, r *http.Request) {
	var req remittance.CloseDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CloseDay decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.remittanceService.CloseDay(r.Context(), req, middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Business day closed successfully", resp)
}

func (h *RemittanceHandlerImpl) ListClosings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	resp, err := h.remittanceService.ListClosings(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
