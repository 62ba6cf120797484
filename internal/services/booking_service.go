package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/dmejia/opsledger-api/internal/models"
	"github.com/dmejia/opsledger-api/internal/repository"
	"github.com/dmejia/opsledger-api/internal/statemachine"
)

// BookingService manages bookings and the income transactions they derive.
// Every paid or partial booking write is committed together with its income
// transaction; neither is ever persisted alone.
type BookingService struct {
	repo         repository.BookingRepository
	customerRepo repository.CustomerRepository
	catalogRepo  repository.CatalogRepository
}

// NewBookingService creates a new booking service
func NewBookingService(repo repository.BookingRepository, customerRepo repository.CustomerRepository, catalogRepo repository.CatalogRepository) *BookingService {
	return &BookingService{
		repo:         repo,
		customerRepo: customerRepo,
		catalogRepo:  catalogRepo,
	}
}

// BookingInput carries validated booking fields from the HTTP layer
type BookingInput struct {
	CustomerID     uint       `json:"customer_id"`
	BookingTypeID  uint       `json:"booking_type_id"`
	EventDate      time.Time  `json:"event_date"`
	EndDate        *time.Time `json:"end_date"`
	ExpectedIncome float64    `json:"expected_income"`
	PaymentStatus  string     `json:"payment_status"`
	PartialAmount  float64    `json:"partial_amount"`
	Notes          *string    `json:"notes"`
}

// Create creates a booking. When the payment status is Paid or Partial the
// derived income transaction is logged in the same database transaction.
func (s *BookingService) Create(ctx context.Context, input BookingInput) (*models.Booking, error) {
	customer, err := s.customerRepo.FindByID(ctx, input.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer %d", ErrNotFound, input.CustomerID)
		}
		return nil, err
	}

	bookingType, err := s.catalogRepo.FindBookingType(ctx, input.BookingTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking type %d", ErrNotFound, input.BookingTypeID)
		}
		return nil, err
	}

	status := input.PaymentStatus
	if status == "" {
		status = models.BookingPaymentPending
	}
	if !models.ValidBookingPaymentStatus(status) {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrValidation, input.PaymentStatus)
	}
	if input.ExpectedIncome < 0 {
		return nil, fmt.Errorf("%w: expected income must not be negative", ErrValidation)
	}
	if input.PartialAmount < 0 {
		return nil, fmt.Errorf("%w: partial amount must not be negative", ErrValidation)
	}
	if status == models.BookingPaymentPartial && input.PartialAmount > input.ExpectedIncome {
		return nil, fmt.Errorf("%w: partial amount exceeds expected income", ErrValidation)
	}

	booking := &models.Booking{
		CustomerID:     input.CustomerID,
		BookingTypeID:  input.BookingTypeID,
		EventDate:      input.EventDate,
		EndDate:        input.EndDate,
		ExpectedIncome: input.ExpectedIncome,
		PaymentStatus:  status,
		Notes:          input.Notes,
	}
	if status == models.BookingPaymentPartial {
		booking.PartialAmount = input.PartialAmount
	}

	income := s.deriveIncome(booking, bookingType.Name, customer.Name, status, input.PartialAmount)

	if err := s.repo.CreateWithIncome(ctx, booking, income); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return booking, nil
}

// Get returns a booking with customer and type loaded
func (s *BookingService) Get(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.repo.FindByIDWithDetails(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return booking, nil
}

// UpdatePaymentStatus transitions the booking's payment status. Transitions
// into Paid or Partial append exactly one income transaction, committed with
// the booking write. Re-saving the current status is a no-op.
func (s *BookingService) UpdatePaymentStatus(ctx context.Context, id uint, newStatus string, partialAmount float64) (*models.Booking, error) {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.ValidBookingPaymentStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrValidation, newStatus)
	}
	if newStatus == booking.PaymentStatus {
		return booking, nil
	}
	if partialAmount < 0 {
		return nil, fmt.Errorf("%w: partial amount must not be negative", ErrValidation)
	}

	alreadyLogged := booking.PartialAmount

	bookingFSM := statemachine.NewBookingFSM(booking)
	switch newStatus {
	case models.BookingPaymentPartial:
		if partialAmount > booking.ExpectedIncome {
			return nil, fmt.Errorf("%w: partial amount exceeds expected income", ErrValidation)
		}
		if err := bookingFSM.MarkPartial(ctx); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidState, err.Error())
		}
		booking.PartialAmount = partialAmount
	case models.BookingPaymentPaid:
		if err := bookingFSM.MarkPaid(ctx); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidState, err.Error())
		}
	default:
		// moving back to pending is not a supported transition
		return nil, fmt.Errorf("%w: booking cannot return to pending", ErrInvalidState)
	}

	var income *models.Transaction
	switch newStatus {
	case models.BookingPaymentPartial:
		income = s.deriveIncome(booking, s.bookingTypeName(ctx, booking), s.customerName(ctx, booking), newStatus, partialAmount)
	case models.BookingPaymentPaid:
		// log only the balance not yet covered by a partial payment
		remaining := booking.ExpectedIncome - alreadyLogged
		if remaining > 0 {
			income = &models.Transaction{
				Type:        models.TransactionTypeIncome,
				Category:    models.TransactionCategoryBooking,
				Amount:      remaining,
				Status:      models.TransactionStatusPaid,
				Date:        time.Now(),
				Party:       strPtr(s.customerName(ctx, booking)),
				Description: strPtr(fmt.Sprintf("%s Booking", s.bookingTypeName(ctx, booking))),
			}
		}
	}

	if err := s.repo.UpdateWithIncome(ctx, booking, income); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	return booking, nil
}

// BookingUpdateInput carries the scheduling fields a booking update may change.
// Payment status changes go through UpdatePaymentStatus instead.
type BookingUpdateInput struct {
	EventDate      *time.Time `json:"event_date"`
	EndDate        *time.Time `json:"end_date"`
	ExpectedIncome *float64   `json:"expected_income"`
	Notes          *string    `json:"notes"`
}

// Update edits a booking's scheduling fields
func (s *BookingService) Update(ctx context.Context, id uint, input BookingUpdateInput) (*models.Booking, error) {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.EventDate != nil {
		booking.EventDate = *input.EventDate
	}
	if input.EndDate != nil {
		booking.EndDate = input.EndDate
	}
	if input.ExpectedIncome != nil {
		if *input.ExpectedIncome < 0 {
			return nil, fmt.Errorf("%w: expected income must not be negative", ErrValidation)
		}
		booking.ExpectedIncome = *input.ExpectedIncome
	}
	if input.Notes != nil {
		booking.Notes = input.Notes
	}

	if err := s.repo.UpdateWithIncome(ctx, booking, nil); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	return booking, nil
}

// Delete removes a booking; transactions it logged remain in the ledger
func (s *BookingService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// List returns bookings matching the query
func (s *BookingService) List(ctx context.Context, query *repository.ListQuery) ([]models.Booking, int64, error) {
	return s.repo.List(ctx, query)
}

// deriveIncome builds the income transaction a paid or partial booking
// produces, or nil when nothing should be logged (pending, or a partial of
// zero).
func (s *BookingService) deriveIncome(booking *models.Booking, typeName, customerName, status string, partialAmount float64) *models.Transaction {
	var amount float64
	description := fmt.Sprintf("%s Booking", typeName)

	switch status {
	case models.BookingPaymentPaid:
		amount = booking.ExpectedIncome
	case models.BookingPaymentPartial:
		if partialAmount <= 0 {
			return nil
		}
		amount = partialAmount
		description += " (Partial Payment)"
	default:
		return nil
	}

	if amount <= 0 {
		return nil
	}

	return &models.Transaction{
		Type:        models.TransactionTypeIncome,
		Category:    models.TransactionCategoryBooking,
		Party:       strPtr(customerName),
		Description: strPtr(description),
		Amount:      amount,
		Status:      models.TransactionStatusPaid,
		Date:        time.Now(),
	}
}

func (s *BookingService) bookingTypeName(ctx context.Context, booking *models.Booking) string {
	if booking.BookingType.ID != 0 {
		return booking.BookingType.Name
	}
	bt, err := s.catalogRepo.FindBookingType(ctx, booking.BookingTypeID)
	if err != nil {
		return "Booking"
	}
	return bt.Name
}

func (s *BookingService) customerName(ctx context.Context, booking *models.Booking) string {
	if booking.Customer.ID != 0 {
		return booking.Customer.Name
	}
	customer, err := s.customerRepo.FindByID(ctx, booking.CustomerID)
	if err != nil {
		return ""
	}
	return customer.Name
}

func strPtr(s string) *string {
	return &s
}
