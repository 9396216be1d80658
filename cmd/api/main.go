package main

import (
	"fmt"
	"net/http"

	"github.com/remitdesk/backoffice-go/internal/config"
	"github.com/remitdesk/backoffice-go/internal/domain/approval"
	appHTTP "github.com/remitdesk/backoffice-go/internal/handler/http"
	"github.com/remitdesk/backoffice-go/internal/pkg/database"
	"github.com/remitdesk/backoffice-go/internal/pkg/jwt"
	"github.com/remitdesk/backoffice-go/internal/repository/postgresql"
	approvalService "github.com/remitdesk/backoffice-go/internal/service/approval"
	attendanceService "github.com/remitdesk/backoffice-go/internal/service/attendance"
	authService "github.com/remitdesk/backoffice-go/internal/service/auth"
	employeeService "github.com/remitdesk/backoffice-go/internal/service/employee"
	expenseService "github.com/remitdesk/backoffice-go/internal/service/expense"
	leaveService "github.com/remitdesk/backoffice-go/internal/service/leave"
	ledgerService "github.com/remitdesk/backoffice-go/internal/service/ledger"
	masterService "github.com/remitdesk/backoffice-go/internal/service/master"
	payrollService "github.com/remitdesk/backoffice-go/internal/service/payroll"
	remittanceService "github.com/remitdesk/backoffice-go/internal/service/remittance"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	accountRepo := postgresql.NewAccountRepository(db)
	journalRepo := postgresql.NewJournalRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	ruleRepo := postgresql.NewLateDeductionRuleRepository(db)
	calculationRepo := postgresql.NewCalculationRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	approvalRepo := postgresql.NewApprovalRepository(db)
	voucherRepo := postgresql.NewVoucherRepository(db)
	remittanceRepo := postgresql.NewRemittanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	positionRepo := postgresql.NewPositionRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	txManager := postgresql.NewTxManager(db)

	ledgerSvc := ledgerService.NewService(txManager, accountRepo, journalRepo)
	payrollSvc := payrollService.NewService(
		txManager,
		salaryRepo,
		ruleRepo,
		calculationRepo,
		attendanceRepo,
		leaveRequestRepo,
		employeeRepo,
		accountRepo,
		ledgerSvc,
		payrollService.DefaultPostingAccounts(),
	)
	attendanceSvc := attendanceService.NewService(attendanceRepo, workScheduleRepo, employeeRepo)
	approvalSvc := approvalService.NewService(txManager, approvalRepo, map[approval.EntityKind]approval.EntityStatusUpdater{
		approval.EntityExpenseVoucher: approvalService.NewExpenseVoucherUpdater(voucherRepo),
		approval.EntityLeaveRequest:   approvalService.NewLeaveRequestUpdater(leaveRequestRepo),
		approval.EntityPurchaseOrder:  approvalService.NewRecordOnlyUpdater(),
		approval.EntityPaymentRequest: approvalService.NewRecordOnlyUpdater(),
	})
	leaveSvc := leaveService.NewService(txManager, leaveRequestRepo, approvalRepo, employeeRepo)
	expenseSvc := expenseService.NewService(txManager, voucherRepo, approvalRepo, employeeRepo)
	remittanceSvc := remittanceService.NewService(txManager, remittanceRepo, accountRepo, ledgerSvc, remittanceService.DefaultPostingAccounts())
	employeeSvc := employeeService.NewService(employeeRepo)
	masterSvc := masterService.NewService(departmentRepo, positionRepo)
	authSvc := authService.NewService(userRepo, JWTService)

	router := appHTTP.NewRouter(cfg, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc, JWTService),
		Ledger:     appHTTP.NewLedgerHandler(ledgerSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Approval:   appHTTP.NewApprovalHandler(approvalSvc),
		Expense:    appHTTP.NewExpenseHandler(expenseSvc),
		Remittance: appHTTP.NewRemittanceHandler(remittanceSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Master:     appHTTP.NewMasterHandler(masterSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server running on port", cfg.App.Port)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Error starting server:", err)
	}
}
