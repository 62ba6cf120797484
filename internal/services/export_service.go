package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/dmejia/opsledger-api/internal/models"
	"github.com/dmejia/opsledger-api/internal/repository"
)

// ExportService renders read-only projections: the filtered transaction
// ledger as CSV or XLSX, and a single invoice as PDF.
type ExportService struct {
	txnRepo     repository.TransactionRepository
	invoiceRepo repository.InvoiceRepository
}

// NewExportService creates a new export service
func NewExportService(txnRepo repository.TransactionRepository, invoiceRepo repository.InvoiceRepository) *ExportService {
	return &ExportService{txnRepo: txnRepo, invoiceRepo: invoiceRepo}
}

// transactionCSVHeader is the fixed export header row
var transactionCSVHeader = []string{"Date", "Type", "Category", "Party", "Description", "Amount", "Status"}

// TransactionsCSV exports the filtered transaction list as CSV. Amounts are
// formatted to two decimal places.
func (s *ExportService) TransactionsCSV(ctx context.Context, query *repository.ListQuery) ([]byte, string, error) {
	txns, _, err := s.txnRepo.List(ctx, query)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write(transactionCSVHeader)
	for _, t := range txns {
		_ = writer.Write([]string{
			t.Date.Format("2006-01-02"),
			t.Type,
			t.Category,
			deref(t.Party),
			deref(t.Description),
			fmt.Sprintf("%.2f", t.Amount),
			t.Status,
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("transactions_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// TransactionsXLSX exports the filtered transaction list as a styled XLSX
func (s *ExportService) TransactionsXLSX(ctx context.Context, query *repository.ListQuery) ([]byte, string, error) {
	txns, _, err := s.txnRepo.List(ctx, query)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Transactions"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for col, name := range transactionCSVHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, name)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, t := range txns {
		values := []interface{}{
			t.Date.Format("2006-01-02"),
			t.Type,
			t.Category,
			deref(t.Party),
			deref(t.Description),
			t.Amount,
			t.Status,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("transactions_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// InvoicePDF renders an invoice: title, customer block, line-item table and
// total row.
func (s *ExportService) InvoicePDF(ctx context.Context, invoice *models.Invoice) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Invoice #%d", invoice.ID))
	pdf.Ln(12)

	// Customer block
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(40, 7, "Billed To")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(80, 6, invoice.Customer.Name)
	pdf.Ln(5)
	if invoice.Customer.Email != nil && *invoice.Customer.Email != "" {
		pdf.Cell(80, 6, *invoice.Customer.Email)
		pdf.Ln(5)
	}
	if invoice.Customer.Address != nil && *invoice.Customer.Address != "" {
		pdf.Cell(80, 6, *invoice.Customer.Address)
		pdf.Ln(5)
	}
	pdf.Ln(6)

	// Line item table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(224, 224, 224)
	pdf.CellFormat(90, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Subtotal", "1", 0, "R", true, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	for _, item := range invoice.Items {
		pdf.CellFormat(90, 7, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", item.Subtotal()), "1", 0, "R", false, 0, "")
		pdf.Ln(7)
	}

	// Total row
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(140, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", invoice.Total), "1", 0, "R", false, 0, "")
	pdf.Ln(8)

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("invoice_%d.pdf", invoice.ID)
	return buf.Bytes(), filename, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
