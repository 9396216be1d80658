package master

import (
	"context"

	"github.com/remitdesk/backoffice-go/internal/domain/master"
)

type Service struct {
	departmentRepo master.DepartmentRepository
	positionRepo   master.PositionRepository
}

func NewService(departmentRepo master.DepartmentRepository, positionRepo master.PositionRepository) *Service {
	return &Service{
		departmentRepo: departmentRepo,
		positionRepo:   positionRepo,
	}
}

func (s *Service) CreateDepartment(ctx context.Context, req master.CreateNameRequest) (master.NameResponse, error) {
	if err := req.Validate(); err != nil {
		return master.NameResponse{}, err
	}

	d, err := s.departmentRepo.Create(ctx, master.Department{Name: req.Name})
	if err != nil {
		return master.NameResponse{}, err
	}
	return master.NameResponse{ID: d.ID, Name: d.Name}, nil
}

func (s *Service) ListDepartments(ctx context.Context) ([]master.NameResponse, error) {
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]master.NameResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, master.NameResponse{ID: d.ID, Name: d.Name})
	}
	return responses, nil
}

func (s *Service) DeleteDepartment(ctx context.Context, id string) error {
	return s.departmentRepo.Delete(ctx, id)
}

func (s *Service) CreatePosition(ctx context.Context, req master.CreateNameRequest) (master.NameResponse, error) {
	if err := req.Validate(); err != nil {
		return master.NameResponse{}, err
	}

	p, err := s.positionRepo.Create(ctx, master.Position{Name: req.Name})
	if err != nil {
		return master.NameResponse{}, err
	}
	return master.NameResponse{ID: p.ID, Name: p.Name}, nil
}

func (s *Service) ListPositions(ctx context.Context) ([]master.NameResponse, error) {
	positions, err := s.positionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]master.NameResponse, 0, len(positions))
	for _, p := range positions {
		responses = append(responses, master.NameResponse{ID: p.ID, Name: p.Name})
	}
	return responses, nil
}

func (s *Service) DeletePosition(ctx context.Context, id string) error {
	return s.positionRepo.Delete(ctx, id)
}
