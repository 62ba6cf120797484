package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmejia/opsledger-api/internal/models"
)

func TestBookingServicePaidBookingLogsFullIncome(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Acme Corp")
	bt := seedBookingType(t, db, "Wedding", 500)

	booking, err := svcs.Booking.Create(ctx, BookingInput{
		CustomerID:     customer.ID,
		BookingTypeID:  bt.ID,
		EventDate:      time.Now().AddDate(0, 1, 0),
		ExpectedIncome: 500,
		PaymentStatus:  models.BookingPaymentPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingPaymentPaid, booking.PaymentStatus)

	var txn models.Transaction
	require.NoError(t, db.First(&txn).Error)
	assert.Equal(t, models.TransactionTypeIncome, txn.Type)
	assert.Equal(t, models.TransactionCategoryBooking, txn.Category)
	assert.Equal(t, 500.0, txn.Amount)
	assert.Equal(t, models.TransactionStatusPaid, txn.Status)
	require.NotNil(t, txn.Party)
	assert.Equal(t, "Acme Corp", *txn.Party)
	require.NotNil(t, txn.Description)
	assert.Equal(t, "Wedding Booking", *txn.Description)
}

func TestBookingServicePartialBookingLogsPartialAmount(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Acme Corp")
	bt := seedBookingType(t, db, "Wedding", 500)

	_, err := svcs.Booking.Create(ctx, BookingInput{
		CustomerID:     customer.ID,
		BookingTypeID:  bt.ID,
		EventDate:      time.Now(),
		ExpectedIncome: 500,
		PaymentStatus:  models.BookingPaymentPartial,
		PartialAmount:  150,
	})
	require.NoError(t, err)

	var txn models.Transaction
	require.NoError(t, db.First(&txn).Error)
	assert.Equal(t, 150.0, txn.Amount)
	require.NotNil(t, txn.Description)
	assert.Equal(t, "Wedding Booking (Partial Payment)", *txn.Description)
}

func TestBookingServiceZeroPartialLogsNothing(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Acme Corp")
	bt := seedBookingType(t, db, "Wedding", 500)

	_, err := svcs.Booking.Create(ctx, BookingInput{
		CustomerID:     customer.ID,
		BookingTypeID:  bt.ID,
		EventDate:      time.Now(),
		ExpectedIncome: 500,
		PaymentStatus:  models.BookingPaymentPartial,
		PartialAmount:  0,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), countTransactions(t, db))
}

func TestBookingServicePendingBookingLogsNothing(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Acme Corp")
	bt := seedBookingType(t, db, "Wedding", 500)

	_, err := svcs.Booking.Create(ctx, BookingInput{
		CustomerID:     customer.ID,
		BookingTypeID:  bt.ID,
		EventDate:      time.Now(),
		ExpectedIncome: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), countTransactions(t, db))
}

func TestBookingServiceSameStatusSaveIsNoOp(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Acme Corp")
	bt := seedBookingType(t, db, "Wedding", 500)

	booking, err := svcs.Booking.Create(ctx, BookingInput{
		CustomerID:     customer.ID,
		BookingTypeID:  bt.ID,
		EventDate:      time.Now(),
		ExpectedIncome: 500,
		PaymentStatus:  models.BookingPaymentPaid,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), countTransactions(t, db))

	_, err = svcs.Booking.UpdatePaymentStatus(ctx, booking.ID, models.BookingPaymentPaid, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), countTransactions(t, db))
}

func TestBookingServicePartialToPaidLogsRemainingBalance(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Acme Corp")
	bt := seedBookingType(t, db, "Wedding", 500)

	booking, err := svcs.Booking.Create(ctx, BookingInput{
		CustomerID:     customer.ID,
		BookingTypeID:  bt.ID,
		EventDate:      time.Now(),
		ExpectedIncome: 500,
		PaymentStatus:  models.BookingPaymentPartial,
		PartialAmount:  150,
	})
	require.NoError(t, err)

	_, err = svcs.Booking.UpdatePaymentStatus(ctx, booking.ID, models.BookingPaymentPaid, 0)
	require.NoError(t, err)

	var txns []models.Transaction
	require.NoError(t, db.Order("id ASC").Find(&txns).Error)
	require.Len(t, txns, 2)
	assert.Equal(t, 150.0, txns[0].Amount)
	assert.Equal(t, 350.0, txns[1].Amount)
}

func TestBookingServiceCannotReturnToPending(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Acme Corp")
	bt := seedBookingType(t, db, "Wedding", 500)

	booking, err := svcs.Booking.Create(ctx, BookingInput{
		CustomerID:     customer.ID,
		BookingTypeID:  bt.ID,
		EventDate:      time.Now(),
		ExpectedIncome: 500,
		PaymentStatus:  models.BookingPaymentPaid,
	})
	require.NoError(t, err)

	_, err = svcs.Booking.UpdatePaymentStatus(ctx, booking.ID, models.BookingPaymentPending, 0)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestBookingServiceCreateValidations(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Acme Corp")
	bt := seedBookingType(t, db, "Wedding", 500)

	_, err := svcs.Booking.Create(ctx, BookingInput{CustomerID: 9999, BookingTypeID: bt.ID, EventDate: time.Now()})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svcs.Booking.Create(ctx, BookingInput{CustomerID: customer.ID, BookingTypeID: 9999, EventDate: time.Now()})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svcs.Booking.Create(ctx, BookingInput{
		CustomerID:     customer.ID,
		BookingTypeID:  bt.ID,
		EventDate:      time.Now(),
		ExpectedIncome: 100,
		PaymentStatus:  models.BookingPaymentPartial,
		PartialAmount:  200,
	})
	assert.ErrorIs(t, err, ErrValidation)
}
