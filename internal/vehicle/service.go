package vehicle

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Plate     string
	Brand     string
	Model     string
	Year      int
	DailyRate float64
}

type UpdateRequest struct {
	Plate     *string
	Brand     *string
	Model     *string
	Year      *int
	DailyRate *float64
	IsActive  *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Vehicle, error)
	GetByID(ctx context.Context, id string) (*Vehicle, error)
	List(ctx context.Context, filter Filter) ([]*Vehicle, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Vehicle, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Vehicle, error) {
	plate := normalizePlate(req.Plate)
	if plate == "" {
		return nil, ErrEmptyPlate
	}
	if req.DailyRate <= 0 {
		return nil, ErrInvalidDailyRate
	}

	v := &Vehicle{
		Plate:     plate,
		Brand:     strings.TrimSpace(req.Brand),
		Model:     strings.TrimSpace(req.Model),
		Year:      req.Year,
		DailyRate: req.DailyRate,
		IsActive:  true,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Vehicle, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Vehicle, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Plate != nil {
		plate := normalizePlate(*req.Plate)
		if plate == "" {
			return nil, ErrEmptyPlate
		}
		v.Plate = plate
	}
	if req.Brand != nil {
		v.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Model != nil {
		v.Model = strings.TrimSpace(*req.Model)
	}
	if req.Year != nil {
		v.Year = *req.Year
	}
	if req.DailyRate != nil {
		if *req.DailyRate <= 0 {
			return nil, ErrInvalidDailyRate
		}
		v.DailyRate = *req.DailyRate
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}
