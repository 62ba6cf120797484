package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/dmejia/opsledger-api/internal/models"
	"github.com/dmejia/opsledger-api/internal/repository"
	"github.com/dmejia/opsledger-api/internal/statemachine"
)

// LeadService manages leads and their conversion into customers
type LeadService struct {
	repo repository.LeadRepository
}

// NewLeadService creates a new lead service
func NewLeadService(repo repository.LeadRepository) *LeadService {
	return &LeadService{repo: repo}
}

// LeadInput carries validated lead fields from the HTTP layer
type LeadInput struct {
	ContactName string  `json:"contact_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	LeadType    string  `json:"lead_type"`
	Status      string  `json:"status"`
	Source      *string `json:"source"`
	Notes       *string `json:"notes"`
}

// Create creates a new lead
func (s *LeadService) Create(ctx context.Context, input LeadInput) (*models.Lead, error) {
	if strings.TrimSpace(input.ContactName) == "" {
		return nil, fmt.Errorf("%w: contact name is required", ErrValidation)
	}

	leadType := input.LeadType
	if leadType == "" {
		leadType = models.LeadTypePersonal
	}
	if leadType != models.LeadTypeBusiness && leadType != models.LeadTypePersonal {
		return nil, fmt.Errorf("%w: unknown lead type %q", ErrValidation, input.LeadType)
	}

	status := input.Status
	if status == "" {
		status = models.LeadStatusNew
	}
	if !models.ValidLeadStatus(status) || status == models.LeadStatusConverted {
		return nil, fmt.Errorf("%w: unknown lead status %q", ErrValidation, input.Status)
	}

	lead := &models.Lead{
		ContactName: strings.TrimSpace(input.ContactName),
		Email:       input.Email,
		Phone:       input.Phone,
		LeadType:    leadType,
		Status:      status,
		Source:      input.Source,
		Notes:       input.Notes,
	}
	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	return lead, nil
}

// Get returns a single lead
func (s *LeadService) Get(ctx context.Context, id uint) (*models.Lead, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return lead, nil
}

// Update updates an unconverted lead's fields
func (s *LeadService) Update(ctx context.Context, id uint, input LeadInput) (*models.Lead, error) {
	lead, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead.Status == models.LeadStatusConverted {
		return nil, fmt.Errorf("%w: converted leads are read-only", ErrInvalidState)
	}

	if strings.TrimSpace(input.ContactName) == "" {
		return nil, fmt.Errorf("%w: contact name is required", ErrValidation)
	}
	if input.Status != "" {
		if !models.ValidLeadStatus(input.Status) || input.Status == models.LeadStatusConverted {
			return nil, fmt.Errorf("%w: status %q cannot be set directly", ErrValidation, input.Status)
		}
		lead.Status = input.Status
	}

	lead.ContactName = strings.TrimSpace(input.ContactName)
	lead.Email = input.Email
	lead.Phone = input.Phone
	lead.Source = input.Source
	lead.Notes = input.Notes
	if input.LeadType != "" {
		lead.LeadType = input.LeadType
	}

	if err := s.repo.Update(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}
	return lead, nil
}

// Delete removes a lead
func (s *LeadService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Convert turns a lead into a customer exactly once. The status flip and the
// customer insert share one database transaction; a second conversion attempt
// fails with ErrInvalidState and creates no duplicate customer.
func (s *LeadService) Convert(ctx context.Context, id uint) (*models.Customer, error) {
	lead, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	leadFSM := statemachine.NewLeadFSM(lead)
	if err := leadFSM.Convert(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidState, err.Error())
	}

	customer := &models.Customer{
		Name:  lead.ContactName,
		Email: lead.Email,
		Phone: lead.Phone,
		Notes: lead.Notes,
	}

	if err := s.repo.ConvertToCustomer(ctx, lead, customer); err != nil {
		return nil, fmt.Errorf("failed to convert lead: %w", err)
	}
	return customer, nil
}

// List returns leads matching the query
func (s *LeadService) List(ctx context.Context, query *repository.ListQuery) ([]models.Lead, int64, error) {
	return s.repo.List(ctx, query)
}
