package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/remitdesk/backoffice-go/internal/domain/employee"
	"github.com/remitdesk/backoffice-go/internal/pkg/validator"
)

// codeRetries bounds the assign-and-retry loop when two writers race for the
// same EMP-NNNN sequence.
const codeRetries = 3

type Service struct {
	employeeRepo employee.EmployeeRepository
}

func NewService(employeeRepo employee.EmployeeRepository) *Service {
	return &Service{employeeRepo: employeeRepo}
}

// Create assigns the next EMP-NNNN code server-side and retries on a
// sequence collision with a concurrent create.
func (s *Service) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	hireDate, _ := validator.IsValidDate(req.HireDate)

	emp := employee.Employee{
		Name:         req.Name,
		Email:        req.Email,
		DepartmentID: req.DepartmentID,
		PositionID:   req.PositionID,
		HireDate:     hireDate,
	}

	var created employee.Employee
	var err error
	for attempt := 0; attempt < codeRetries; attempt++ {
		var seq int
		seq, err = s.employeeRepo.MaxCodeSequence(ctx)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		emp.Code = fmt.Sprintf("EMP-%04d", seq+1)

		created, err = s.employeeRepo.Create(ctx, emp)
		if errors.Is(err, employee.ErrEmployeeCodeExists) {
			continue
		}
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		return toResponse(created), nil
	}

	return employee.EmployeeResponse{}, err
}

func (s *Service) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(emp), nil
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, toResponse(emp))
	}
	return responses, nil
}

func (s *Service) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		if validator.IsEmpty(*req.Name) {
			return employee.EmployeeResponse{}, validator.ValidationErrors{{Field: "name", Message: "must not be blank"}}
		}
		emp.Name = *req.Name
	}
	if req.Email != nil {
		if !validator.IsValidEmail(*req.Email) {
			return employee.EmployeeResponse{}, validator.ValidationErrors{{Field: "email", Message: "must be a valid email"}}
		}
		emp.Email = *req.Email
	}
	if req.DepartmentID != nil {
		emp.DepartmentID = req.DepartmentID
	}
	if req.PositionID != nil {
		emp.PositionID = req.PositionID
	}

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.IsActive != nil && !*req.IsActive {
		if err := s.employeeRepo.Deactivate(ctx, emp.ID); err != nil {
			return employee.EmployeeResponse{}, err
		}
		emp.IsActive = false
	}

	return toResponse(emp), nil
}

// Deactivate soft-deletes; employees referenced by history are never removed.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	return s.employeeRepo.Deactivate(ctx, id)
}

func toResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:             e.ID,
		Code:           e.Code,
		Name:           e.Name,
		Email:          e.Email,
		DepartmentID:   e.DepartmentID,
		DepartmentName: e.DepartmentName,
		PositionID:     e.PositionID,
		PositionName:   e.PositionName,
		HireDate:       e.HireDate.Format("2006-01-02"),
		IsActive:       e.IsActive,
	}
}
