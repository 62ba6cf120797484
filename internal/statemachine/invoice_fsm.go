package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/dmejia/opsledger-api/internal/models"
)

// InvoiceFSM wraps an invoice with its status state machine. Paid is
// terminal: repeated settlement attempts fail here, which keeps the derived
// income transaction from ever being logged twice.
type InvoiceFSM struct {
	invoice *models.Invoice
	fsm     *fsm.FSM
}

// NewInvoiceFSM creates a new invoice state machine
func NewInvoiceFSM(invoice *models.Invoice) *InvoiceFSM {
	ifsm := &InvoiceFSM{
		invoice: invoice,
	}

	ifsm.fsm = fsm.NewFSM(
		invoice.Status,
		fsm.Events{
			{Name: "mark_paid", Src: []string{models.InvoiceStatusDraft}, Dst: models.InvoiceStatusPaid},
		},
		fsm.Callbacks{},
	)

	return ifsm
}

// MarkPaid transitions the invoice to paid
func (i *InvoiceFSM) MarkPaid(ctx context.Context) error {
	if !i.invoice.MayMarkPaid() {
		return fmt.Errorf("invoice cannot be marked paid in current state: %s", i.invoice.Status)
	}

	if err := i.fsm.Event(ctx, "mark_paid"); err != nil {
		return fmt.Errorf("failed to mark invoice paid: %w", err)
	}

	i.invoice.Status = i.fsm.Current()
	return nil
}

// Current returns the current state
func (i *InvoiceFSM) Current() string {
	return i.fsm.Current()
}

// Can checks if a transition is possible
func (i *InvoiceFSM) Can(event string) bool {
	return i.fsm.Can(event)
}
