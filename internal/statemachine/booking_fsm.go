package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/dmejia/opsledger-api/internal/models"
)

// BookingFSM wraps a booking's payment status. Paid is terminal; there is no
// un-pay path.
type BookingFSM struct {
	booking *models.Booking
	fsm     *fsm.FSM
}

// NewBookingFSM creates a new booking payment state machine
func NewBookingFSM(booking *models.Booking) *BookingFSM {
	bfsm := &BookingFSM{
		booking: booking,
	}

	bfsm.fsm = fsm.NewFSM(
		booking.PaymentStatus,
		fsm.Events{
			// pending → partial
			{Name: "mark_partial", Src: []string{models.BookingPaymentPending}, Dst: models.BookingPaymentPartial},

			// pending/partial → paid
			{Name: "mark_paid", Src: []string{models.BookingPaymentPending, models.BookingPaymentPartial}, Dst: models.BookingPaymentPaid},
		},
		fsm.Callbacks{},
	)

	return bfsm
}

// MarkPartial transitions the booking to partial payment
func (b *BookingFSM) MarkPartial(ctx context.Context) error {
	if err := b.fsm.Event(ctx, "mark_partial"); err != nil {
		return fmt.Errorf("booking cannot move to partial in current state %s: %w", b.booking.PaymentStatus, err)
	}
	b.booking.PaymentStatus = b.fsm.Current()
	return nil
}

// MarkPaid transitions the booking to fully paid
func (b *BookingFSM) MarkPaid(ctx context.Context) error {
	if err := b.fsm.Event(ctx, "mark_paid"); err != nil {
		return fmt.Errorf("booking cannot move to paid in current state %s: %w", b.booking.PaymentStatus, err)
	}
	b.booking.PaymentStatus = b.fsm.Current()
	return nil
}

// Current returns the current state
func (b *BookingFSM) Current() string {
	return b.fsm.Current()
}

// Can checks if a transition is possible
func (b *BookingFSM) Can(event string) bool {
	return b.fsm.Can(event)
}
