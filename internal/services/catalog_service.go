package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmejia/opsledger-api/internal/models"
	"github.com/dmejia/opsledger-api/internal/repository"
)

// CatalogService manages the reference catalogs (booking types, work order
// types, job types)
type CatalogService struct {
	repo repository.CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo repository.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// CatalogEntryInput carries the fields shared by all three catalogs
type CatalogEntryInput struct {
	Name      string  `json:"name"`
	BasePrice float64 `json:"base_price"`
}

func (in CatalogEntryInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.BasePrice < 0 {
		return fmt.Errorf("%w: base price must not be negative", ErrValidation)
	}
	return nil
}

func (s *CatalogService) ListBookingTypes(ctx context.Context) ([]models.BookingType, error) {
	return s.repo.ListBookingTypes(ctx)
}

func (s *CatalogService) CreateBookingType(ctx context.Context, input CatalogEntryInput) (*models.BookingType, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	bt := &models.BookingType{Name: strings.TrimSpace(input.Name), BasePrice: input.BasePrice}
	if err := s.repo.CreateBookingType(ctx, bt); err != nil {
		return nil, err
	}
	return bt, nil
}

func (s *CatalogService) ListWorkOrderTypes(ctx context.Context) ([]models.WorkOrderType, error) {
	return s.repo.ListWorkOrderTypes(ctx)
}

func (s *CatalogService) CreateWorkOrderType(ctx context.Context, input CatalogEntryInput) (*models.WorkOrderType, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	wt := &models.WorkOrderType{Name: strings.TrimSpace(input.Name), BasePrice: input.BasePrice}
	if err := s.repo.CreateWorkOrderType(ctx, wt); err != nil {
		return nil, err
	}
	return wt, nil
}

func (s *CatalogService) ListJobTypes(ctx context.Context) ([]models.JobType, error) {
	return s.repo.ListJobTypes(ctx)
}

func (s *CatalogService) CreateJobType(ctx context.Context, input CatalogEntryInput) (*models.JobType, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	jt := &models.JobType{Name: strings.TrimSpace(input.Name), BasePrice: input.BasePrice}
	if err := s.repo.CreateJobType(ctx, jt); err != nil {
		return nil, err
	}
	return jt, nil
}
