package leave

import (
	"context"
	"fmt"

	"github.com/remitdesk/backoffice-go/internal/domain/approval"
	"github.com/remitdesk/backoffice-go/internal/domain/employee"
	"github.com/remitdesk/backoffice-go/internal/domain/leave"
	"github.com/remitdesk/backoffice-go/internal/pkg/database"
	"github.com/remitdesk/backoffice-go/internal/pkg/validator"
)

type Service struct {
	tx           database.TxManager
	leaveRepo    leave.LeaveRequestRepository
	approvalRepo approval.ApprovalRepository
	employeeRepo employee.EmployeeRepository
}

func NewService(
	tx database.TxManager,
	leaveRepo leave.LeaveRequestRepository,
	approvalRepo approval.ApprovalRepository,
	employeeRepo employee.EmployeeRepository,
) *Service {
	return &Service{
		tx:           tx,
		leaveRepo:    leaveRepo,
		approvalRepo: approvalRepo,
		employeeRepo: employeeRepo,
	}
}

// CreateRequest files a leave request together with its approval record in
// one transaction. The request starts pending and is decided through the
// approval tracker, which flips its status back here.
func (s *Service) CreateRequest(ctx context.Context, req leave.CreateLeaveRequestRequest, requestedBy string) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !emp.IsActive {
		return leave.LeaveRequestResponse{}, employee.ErrEmployeeInactive
	}

	overlapping, err := s.leaveRepo.CheckOverlapping(ctx, emp.ID, start, end)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if overlapping {
		return leave.LeaveRequestResponse{}, leave.ErrOverlappingLeave
	}

	var created leave.LeaveRequest
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err = s.leaveRepo.Create(txCtx, leave.LeaveRequest{
			EmployeeID: emp.ID,
			StartDate:  start,
			EndDate:    end,
			TotalDays:  req.TotalDays,
			Reason:     req.Reason,
		})
		if err != nil {
			return err
		}

		_, err = s.approvalRepo.Create(txCtx, approval.ApprovalRecord{
			EntityType:  approval.EntityLeaveRequest,
			EntityID:    created.ID,
			Title:       fmt.Sprintf("Leave request %s to %s (%s)", req.StartDate, req.EndDate, emp.Name),
			RequestedBy: requestedBy,
			Status:      approval.StatusPending,
		})
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	created.EmployeeName = &emp.Name

	return toResponse(created), nil
}

func (s *Service) GetRequest(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	req, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return toResponse(req), nil
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.leaveRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, toResponse(req))
	}
	return responses, nil
}

func toResponse(req leave.LeaveRequest) leave.LeaveRequestResponse {
	resp := leave.LeaveRequestResponse{
		ID:         req.ID,
		EmployeeID: req.EmployeeID,
		StartDate:  req.StartDate.Format("2006-01-02"),
		EndDate:    req.EndDate.Format("2006-01-02"),
		TotalDays:  req.TotalDays,
		Reason:     req.Reason,
		Status:     string(req.Status),
	}
	if req.EmployeeName != nil {
		resp.EmployeeName = *req.EmployeeName
	}
	return resp
}
