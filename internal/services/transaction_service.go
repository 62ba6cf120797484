package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dmejia/opsledger-api/internal/models"
	"github.com/dmejia/opsledger-api/internal/repository"
	"github.com/dmejia/opsledger-api/internal/storage"
)

// TransactionService manages manually entered ledger transactions. Derived
// transactions (booking payments, invoice settlements) are written by the
// booking and invoice services, never through here.
type TransactionService struct {
	repo    repository.TransactionRepository
	storage *storage.LocalStorage
}

// NewTransactionService creates a new transaction service
func NewTransactionService(repo repository.TransactionRepository, store *storage.LocalStorage) *TransactionService {
	return &TransactionService{repo: repo, storage: store}
}

// TransactionInput carries validated transaction fields from the HTTP layer
type TransactionInput struct {
	Type        string     `json:"type"`
	Category    string     `json:"category"`
	Party       *string    `json:"party"`
	Description *string    `json:"description"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"`
	Date        *time.Time `json:"date"`
}

func (in TransactionInput) validate() error {
	if !models.ValidTransactionType(in.Type) {
		return fmt.Errorf("%w: unknown transaction type %q", ErrValidation, in.Type)
	}
	if !models.ValidTransactionStatus(in.Status) {
		return fmt.Errorf("%w: unknown transaction status %q", ErrValidation, in.Status)
	}
	if strings.TrimSpace(in.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	if in.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}
	return nil
}

// Create records a manual transaction
func (s *TransactionService) Create(ctx context.Context, input TransactionInput) (*models.Transaction, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	txn := &models.Transaction{
		Type:        input.Type,
		Category:    strings.TrimSpace(input.Category),
		Party:       input.Party,
		Description: input.Description,
		Amount:      input.Amount,
		Status:      input.Status,
		Date:        date,
	}
	if err := s.repo.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return txn, nil
}

// Get returns a single transaction
func (s *TransactionService) Get(ctx context.Context, id uint) (*models.Transaction, error) {
	txn, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return txn, nil
}

// Update edits a transaction's fields
func (s *TransactionService) Update(ctx context.Context, id uint, input TransactionInput) (*models.Transaction, error) {
	txn, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	txn.Type = input.Type
	txn.Category = strings.TrimSpace(input.Category)
	txn.Party = input.Party
	txn.Description = input.Description
	txn.Amount = input.Amount
	txn.Status = input.Status
	if input.Date != nil {
		txn.Date = *input.Date
	}

	if err := s.repo.Update(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return txn, nil
}

// UploadReceipt stores a receipt file and records its path
func (s *TransactionService) UploadReceipt(ctx context.Context, id uint, file multipart.File, header *multipart.FileHeader) (*models.Transaction, error) {
	txn, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	path, err := s.storage.Upload(file, header, "receipts")
	if err != nil {
		return nil, fmt.Errorf("failed to store receipt: %w", err)
	}

	if txn.HasReceipt() {
		_ = s.storage.Delete(*txn.ReceiptPath)
	}

	txn.ReceiptPath = &path
	if err := s.repo.Update(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return txn, nil
}

// ReceiptPath returns the stored receipt path for download
func (s *TransactionService) ReceiptPath(ctx context.Context, id uint) (string, error) {
	txn, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !txn.HasReceipt() {
		return "", fmt.Errorf("%w: transaction %d has no receipt", ErrNotFound, id)
	}
	return *txn.ReceiptPath, nil
}

// Delete removes a transaction and its receipt file best-effort
func (s *TransactionService) Delete(ctx context.Context, id uint) error {
	txn, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.storage != nil && txn.HasReceipt() {
		_ = s.storage.Delete(*txn.ReceiptPath)
	}
	return nil
}

// List returns transactions matching the query
func (s *TransactionService) List(ctx context.Context, query *repository.ListQuery) ([]models.Transaction, int64, error) {
	return s.repo.List(ctx, query)
}
