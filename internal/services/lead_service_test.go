package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmejia/opsledger-api/internal/models"
)

func TestLeadServiceConvertCopiesContactFields(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	email := "maria@example.com"
	phone := "555-0101"
	notes := "met at trade show"
	lead, err := svcs.Lead.Create(ctx, LeadInput{
		ContactName: "Maria Flores",
		Email:       &email,
		Phone:       &phone,
		LeadType:    models.LeadTypeBusiness,
		Status:      models.LeadStatusQualified,
		Notes:       &notes,
	})
	require.NoError(t, err)

	customer, err := svcs.Lead.Convert(ctx, lead.ID)
	require.NoError(t, err)

	assert.Equal(t, "Maria Flores", customer.Name)
	require.NotNil(t, customer.Email)
	assert.Equal(t, email, *customer.Email)
	require.NotNil(t, customer.Phone)
	assert.Equal(t, phone, *customer.Phone)
	require.NotNil(t, customer.Notes)
	assert.Equal(t, notes, *customer.Notes)

	var persisted models.Lead
	require.NoError(t, db.First(&persisted, lead.ID).Error)
	assert.Equal(t, models.LeadStatusConverted, persisted.Status)
}

func TestLeadServiceConvertTwiceFails(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	lead, err := svcs.Lead.Create(ctx, LeadInput{ContactName: "Sam Ortiz"})
	require.NoError(t, err)

	_, err = svcs.Lead.Convert(ctx, lead.ID)
	require.NoError(t, err)

	_, err = svcs.Lead.Convert(ctx, lead.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	// the failed retry must not create a duplicate customer
	var customers int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&customers).Error)
	assert.Equal(t, int64(1), customers)
}

func TestLeadServiceConvertMissingLead(t *testing.T) {
	svcs, _ := newTestServices(t)

	_, err := svcs.Lead.Convert(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLeadServiceConvertedLeadIsReadOnly(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	lead, err := svcs.Lead.Create(ctx, LeadInput{ContactName: "Ana Ruiz"})
	require.NoError(t, err)
	_, err = svcs.Lead.Convert(ctx, lead.ID)
	require.NoError(t, err)

	_, err = svcs.Lead.Update(ctx, lead.ID, LeadInput{ContactName: "Ana R."})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestLeadServiceCannotSetConvertedDirectly(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	_, err := svcs.Lead.Create(ctx, LeadInput{ContactName: "Luis P.", Status: models.LeadStatusConverted})
	assert.ErrorIs(t, err, ErrValidation)

	lead, err := svcs.Lead.Create(ctx, LeadInput{ContactName: "Luis P."})
	require.NoError(t, err)

	_, err = svcs.Lead.Update(ctx, lead.ID, LeadInput{ContactName: "Luis P.", Status: models.LeadStatusConverted})
	assert.ErrorIs(t, err, ErrValidation)
}
