package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/remitdesk/backoffice-go/internal/domain/expense"
	"github.com/remitdesk/backoffice-go/internal/handler/http/middleware"
	"github.com/remitdesk/backoffice-go/internal/handler/http/response"
	expensesvc "github.com/remitdesk/backoffice-go/internal/service/expense"
)

type ExpenseHandler interface {
	CreateVoucher(w http.ResponseWriter, r *http.Request)
	GetVoucher(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
}

type ExpenseHandlerImpl struct {
	expenseService *expensesvc.Service
}

func NewExpenseHandler(expenseService *expensesvc.Service) ExpenseHandler {
	return &ExpenseHandlerImpl{expenseService: expenseService}
}

func (h *ExpenseHandlerImpl) CreateVoucher(w http.ResponseWriter, r *http.Request) {
	var req expense.CreateVoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateVoucher decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.expenseService.CreateVoucher(r.Context(), req, middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Expense voucher submitted successfully", resp)
}

func (h *ExpenseHandlerImpl) GetVoucher(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.expenseService.GetVoucher(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *ExpenseHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	resp, err := h.expenseService.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
