package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmejia/opsledger-api/internal/models"
)

func TestWorkOrderServiceBatchDefaultsPricesFromCatalog(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Acme Corp")
	repair := seedWorkOrderType(t, db, "Repair", 120)
	install := seedWorkOrderType(t, db, "Installation", 200)

	orders, err := svcs.WorkOrder.CreateBatch(ctx, customer.ID, nil, []uint{repair.ID, install.ID}, WorkOrderCommonFields{})
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, 120.0, orders[0].Price)
	assert.Equal(t, 200.0, orders[1].Price)
	assert.Equal(t, models.WorkOrderStatusNew, orders[0].Status)
	assert.Equal(t, models.WorkOrderPriorityMedium, orders[0].Priority)

	var count int64
	require.NoError(t, db.Model(&models.WorkOrder{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestWorkOrderServiceBatchPriceOverride(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Acme Corp")
	repair := seedWorkOrderType(t, db, "Repair", 120)

	override := 99.5
	orders, err := svcs.WorkOrder.CreateBatch(ctx, customer.ID, nil, []uint{repair.ID}, WorkOrderCommonFields{PriceOverride: &override})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 99.5, orders[0].Price)
}

func TestWorkOrderServiceBatchIsAllOrNothing(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Acme Corp")
	repair := seedWorkOrderType(t, db, "Repair", 120)

	_, err := svcs.WorkOrder.CreateBatch(ctx, customer.ID, nil, []uint{repair.ID, 9999}, WorkOrderCommonFields{})
	assert.ErrorIs(t, err, ErrNotFound)

	// the valid selection must not have been persisted either
	var count int64
	require.NoError(t, db.Model(&models.WorkOrder{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestWorkOrderServiceEmptySelection(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Acme Corp")

	_, err := svcs.WorkOrder.CreateBatch(ctx, customer.ID, nil, nil, WorkOrderCommonFields{})
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestWorkOrderServiceBookingMustBelongToCustomer(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Acme Corp")
	other := seedCustomer(t, db, "Other LLC")
	bt := seedBookingType(t, db, "Wedding", 500)
	repair := seedWorkOrderType(t, db, "Repair", 120)

	booking := &models.Booking{CustomerID: other.ID, BookingTypeID: bt.ID}
	require.NoError(t, db.Create(booking).Error)

	_, err := svcs.WorkOrder.CreateBatch(ctx, customer.ID, &booking.ID, []uint{repair.ID}, WorkOrderCommonFields{})
	assert.ErrorIs(t, err, ErrValidation)
}
