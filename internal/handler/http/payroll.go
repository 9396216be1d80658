package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/remitdesk/backoffice-go/internal/domain/payroll"
	"github.com/remitdesk/backoffice-go/internal/handler/http/middleware"
	"github.com/remitdesk/backoffice-go/internal/handler/http/response"
	payrollsvc "github.com/remitdesk/backoffice-go/internal/service/payroll"
)

type PayrollHandler interface {
	CreateSalaryStructure(w http.ResponseWriter, r *http.Request)
	ListSalaryStructures(w http.ResponseWriter, r *http.Request)
	UpsertInsuranceConfig(w http.ResponseWriter, r *http.Request)

	CreateLateDeductionRule(w http.ResponseWriter, r *http.Request)
	ListLateDeductionRules(w http.ResponseWriter, r *http.Request)
	AssignLateDeductionRule(w http.ResponseWriter, r *http.Request)

	Calculate(w http.ResponseWriter, r *http.Request)
	GetCalculation(w http.ResponseWriter, r *http.Request)
	ListCalculations(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	CreateTransferBatch(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService *payrollsvc.Service
}

func NewPayrollHandler(payrollService *payrollsvc.Service) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

func (h *PayrollHandlerImpl) CreateSalaryStructure(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateSalaryStructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateSalaryStructure decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.payrollService.CreateSalaryStructure(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary structure created successfully", resp)
}

func (h *PayrollHandlerImpl) ListSalaryStructures(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	resp, err := h.payrollService.ListSalaryStructures(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *PayrollHandlerImpl) UpsertInsuranceConfig(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertInsuranceConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpsertInsuranceConfig decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.payrollService.UpsertInsuranceConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *PayrollHandlerImpl) CreateLateDeductionRule(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateLateDeductionRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateLateDeductionRule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.payrollService.CreateLateDeductionRule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Late deduction rule created successfully", resp)
}

func (h *PayrollHandlerImpl) ListLateDeductionRules(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payrollService.ListLateDeductionRules(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *PayrollHandlerImpl) AssignLateDeductionRule(w http.ResponseWriter, r *http.Request) {
	var req payroll.AssignLateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AssignLateDeductionRule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.payrollService.AssignLateRule(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Late deduction rule assigned", nil)
}

func (h *PayrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req payroll.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Calculate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.payrollService.Calculate(r.Context(), req, middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *PayrollHandlerImpl) GetCalculation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.payrollService.GetCalculation(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *PayrollHandlerImpl) ListCalculations(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")

	resp, err := h.payrollService.ListCalculations(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *PayrollHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	var req payroll.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Confirm decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.payrollService.Confirm(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Calculations confirmed", nil)
}

func (h *PayrollHandlerImpl) CreateTransferBatch(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateTransferBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateTransferBatch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.payrollService.CreateTransferBatch(r.Context(), req, middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary transfer batch created successfully", resp)
}
