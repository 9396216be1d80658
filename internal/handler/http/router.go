package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/remitdesk/backoffice-go/internal/config"
	"github.com/remitdesk/backoffice-go/internal/domain/user"
	"github.com/remitdesk/backoffice-go/internal/handler/http/middleware"
	"github.com/remitdesk/backoffice-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	Ledger     LedgerHandler
	Payroll    PayrollHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Approval   ApprovalHandler
	Expense    ExpenseHandler
	Remittance RemittanceHandler
	Employee   EmployeeHandler
	Master     MasterHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "remitdesk-backoffice"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionUserManage))
				r.Post("/", h.Auth.Register)
				r.Get("/", h.Auth.ListUsers)
			})

			r.Route("/accounts", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLedgerView)).Get("/", h.Ledger.ListAccounts)
				r.With(middleware.RequirePermission(user.PermissionLedgerView)).Get("/{id}", h.Ledger.GetAccount)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAccountManage))
					r.Post("/", h.Ledger.CreateAccount)
					r.Put("/{id}", h.Ledger.UpdateAccount)
					r.Delete("/{id}", h.Ledger.DeactivateAccount)
				})
			})

			r.Route("/journal-entries", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLedgerView)).Get("/", h.Ledger.ListEntries)
				r.With(middleware.RequirePermission(user.PermissionLedgerView)).Get("/{id}", h.Ledger.GetEntry)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLedgerPost))
					r.Post("/", h.Ledger.CreateEntry)
					r.Post("/{id}/post", h.Ledger.PostEntry)
				})

				r.With(middleware.RequirePermission(user.PermissionLedgerVoid)).Post("/{id}/void", h.Ledger.VoidEntry)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSalaryManage))
					r.Post("/salary-structures", h.Payroll.CreateSalaryStructure)
					r.Get("/salary-structures/{employeeID}", h.Payroll.ListSalaryStructures)
					r.Put("/insurance-configs", h.Payroll.UpsertInsuranceConfig)
					r.Post("/late-deduction-rules", h.Payroll.CreateLateDeductionRule)
					r.Get("/late-deduction-rules", h.Payroll.ListLateDeductionRules)
					r.Put("/late-deduction-rules/assignments", h.Payroll.AssignLateDeductionRule)
				})

				r.With(middleware.RequirePermission(user.PermissionPayrollRun)).Post("/calculations", h.Payroll.Calculate)
				r.With(middleware.RequirePermission(user.PermissionPayrollView)).Get("/calculations", h.Payroll.ListCalculations)
				r.With(middleware.RequirePermission(user.PermissionPayrollView)).Get("/calculations/{id}", h.Payroll.GetCalculation)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollConfirm))
					r.Post("/calculations/confirm", h.Payroll.Confirm)
					r.Post("/transfer-batches", h.Payroll.CreateTransferBatch)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceClock))
					r.Post("/clock-in", h.Attendance.ClockIn)
					r.Post("/clock-out", h.Attendance.ClockOut)
				})

				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/records/{employeeID}", h.Attendance.ListRecords)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceManage))
					r.Put("/schedules", h.Attendance.UpsertSchedule)
					r.Get("/schedules/{employeeID}", h.Attendance.GetSchedule)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", h.Leave.CreateRequest)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/{id}", h.Leave.GetRequest)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/employee/{employeeID}", h.Leave.ListByEmployee)
			})

			r.Route("/expense-vouchers", func(r chi.Router) {
				r.Post("/", h.Expense.CreateVoucher)
				r.Get("/{id}", h.Expense.GetVoucher)
				r.Get("/employee/{employeeID}", h.Expense.ListByEmployee)
			})

			r.Route("/approvals", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionApprovalView)).Get("/", h.Approval.List)
				r.With(middleware.RequirePermission(user.PermissionApprovalView)).Get("/{id}", h.Approval.Get)
				r.Post("/", h.Approval.Create)
				r.Post("/{id}/cancel", h.Approval.Cancel)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionApprovalDecide))
					r.Post("/{id}/approve", h.Approval.Approve)
					r.Post("/{id}/reject", h.Approval.Reject)
				})
			})

			r.Route("/remittance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionRemittanceRecord))
					r.Post("/receipts", h.Remittance.RecordReceipt)
					r.Get("/receipts", h.Remittance.ListReceipts)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionRemittanceClose))
					r.Post("/closings", h.Remittance.CloseDay)
					r.Get("/closings", h.Remittance.ListClosings)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).Get("/", h.Employee.List)
				r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).Get("/{id}", h.Employee.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Deactivate)
				})
			})

			r.Route("/master", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionMasterManage))
				r.Post("/departments", h.Master.CreateDepartment)
				r.Get("/departments", h.Master.ListDepartments)
				r.Delete("/departments/{id}", h.Master.DeleteDepartment)
				r.Post("/positions", h.Master.CreatePosition)
				r.Get("/positions", h.Master.ListPositions)
				r.Delete("/positions/{id}", h.Master.DeletePosition)
			})
		})
	})
	return r
}
