package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/remitdesk/backoffice-go/internal/domain/ledger"
	"github.com/remitdesk/backoffice-go/internal/handler/http/middleware"
	"github.com/remitdesk/backoffice-go/internal/handler/http/response"
	ledgersvc "github.com/remitdesk/backoffice-go/internal/service/ledger"
)

type LedgerHandler interface {
	CreateAccount(w http.ResponseWriter, r *http.Request)
	GetAccount(w http.ResponseWriter, r *http.Request)
	ListAccounts(w http.ResponseWriter, r *http.Request)
	UpdateAccount(w http.ResponseWriter, r *http.Request)
	DeactivateAccount(w http.ResponseWriter, r *http.Request)

	CreateEntry(w http.ResponseWriter, r *http.Request)
	GetEntry(w http.ResponseWriter, r *http.Request)
	ListEntries(w http.ResponseWriter, r *http.Request)
	PostEntry(w http.ResponseWriter, r *http.Request)
	VoidEntry(w http.ResponseWriter, r *http.Request)
}

type LedgerHandlerImpl struct {
	ledgerService *ledgersvc.Service
}

func NewLedgerHandler(ledgerService *ledgersvc.Service) LedgerHandler {
	return &LedgerHandlerImpl{ledgerService: ledgerService}
}

func (h *LedgerHandlerImpl) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req ledger.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateAccount decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.ledgerService.CreateAccount(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Account created successfully", resp)
}

func (h *LedgerHandlerImpl) GetAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.ledgerService.GetAccount(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *LedgerHandlerImpl) ListAccounts(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	resp, err := h.ledgerService.ListAccounts(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *LedgerHandlerImpl) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req ledger.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateAccount decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.ledgerService.UpdateAccount(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *LedgerHandlerImpl) DeactivateAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.ledgerService.DeactivateAccount(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Account deactivated", nil)
}

func (h *LedgerHandlerImpl) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req ledger.PostEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.ledgerService.CreateEntry(r.Context(), req, middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Journal entry created successfully", resp)
}

func (h *LedgerHandlerImpl) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.ledgerService.GetEntry(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *LedgerHandlerImpl) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ledger.EntryFilter{}
	if v := q.Get("date_from"); v != "" {
		filter.DateFrom = &v
	}
	if v := q.Get("date_to"); v != "" {
		filter.DateTo = &v
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	resp, err := h.ledgerService.ListEntries(r.Context(), filter)
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

func (h *LedgerHandlerImpl) PostEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.ledgerService.PostEntry(r.Context(), id, middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Journal entry posted", resp)
}

func (h *LedgerHandlerImpl) VoidEntry(w http.ResponseWriter, r *http.Request) {
	var req ledger.VoidEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("VoidEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.ledgerService.VoidEntry(r.Context(), req, middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Journal entry voided", resp)
}
