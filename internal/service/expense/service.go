package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/remitdesk/backoffice-go/internal/domain/approval"
	"github.com/remitdesk/backoffice-go/internal/domain/employee"
	"github.com/remitdesk/backoffice-go/internal/domain/expense"
	"github.com/remitdesk/backoffice-go/internal/pkg/database"
)

type Service struct {
	tx           database.TxManager
	voucherRepo  expense.VoucherRepository
	approvalRepo approval.ApprovalRepository
	employeeRepo employee.EmployeeRepository
}

func NewService(
	tx database.TxManager,
	voucherRepo expense.VoucherRepository,
	approvalRepo approval.ApprovalRepository,
	employeeRepo employee.EmployeeRepository,
) *Service {
	return &Service{
		tx:           tx,
		voucherRepo:  voucherRepo,
		approvalRepo: approvalRepo,
		employeeRepo: employeeRepo,
	}
}

// CreateVoucher files an expense voucher with its approval record in one
// transaction. The voucher number is time-derived; vouchers are low-volume
// enough that a collision is not a practical concern.
func (s *Service) CreateVoucher(ctx context.Context, req expense.CreateVoucherRequest, requestedBy string) (expense.VoucherResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.VoucherResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return expense.VoucherResponse{}, err
	}

	var created expense.ExpenseVoucher
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err = s.voucherRepo.Create(txCtx, expense.ExpenseVoucher{
			VoucherNumber: fmt.Sprintf("EXP-%s", time.Now().Format("20060102-150405")),
			EmployeeID:    emp.ID,
			Amount:        req.Amount,
			Description:   req.Description,
		})
		if err != nil {
			return err
		}

		_, err = s.approvalRepo.Create(txCtx, approval.ApprovalRecord{
			EntityType:  approval.EntityExpenseVoucher,
			EntityID:    created.ID,
			Title:       fmt.Sprintf("Expense voucher %s (%s)", created.VoucherNumber, emp.Name),
			RequestedBy: requestedBy,
			Status:      approval.StatusPending,
		})
		return err
	})
	if err != nil {
		return expense.VoucherResponse{}, err
	}

	return toResponse(created), nil
}

func (s *Service) GetVoucher(ctx context.Context, id string) (expense.VoucherResponse, error) {
	v, err := s.voucherRepo.GetByID(ctx, id)
	if err != nil {
		return expense.VoucherResponse{}, err
	}
	return toResponse(v), nil
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]expense.VoucherResponse, error) {
	vouchers, err := s.voucherRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]expense.VoucherResponse, 0, len(vouchers))
	for _, v := range vouchers {
		responses = append(responses, toResponse(v))
	}
	return responses, nil
}

func toResponse(v expense.ExpenseVoucher) expense.VoucherResponse {
	return expense.VoucherResponse{
		ID:            v.ID,
		VoucherNumber: v.VoucherNumber,
		EmployeeID:    v.EmployeeID,
		Amount:        v.Amount,
		Description:   v.Description,
		Status:        string(v.Status),
	}
}
