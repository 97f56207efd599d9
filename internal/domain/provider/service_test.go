package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karyakarta/karyakarta-api/internal/docstore"
)

func newTestService() *Service {
	return NewService(NewRepository(docstore.NewMemoryStore()))
}

func TestCreateDefaultsToActive(t *testing.T) {
	svc := newTestService()

	p, err := svc.Create(context.Background(), &CreateProviderRequest{
		Name:     "Ravi Kumar",
		Phone:    "+919876543210",
		Category: "plumbing",
		City:     "Bengaluru",
	})
	require.NoError(t, err)
	assert.True(t, p.Active)
	assert.NotEmpty(t, p.ID)

	inactive := false
	p, err = svc.Create(context.Background(), &CreateProviderRequest{
		Name:     "Meena S",
		Phone:    "+919812345678",
		Category: "cleaning",
		Active:   &inactive,
	})
	require.NoError(t, err)
	assert.False(t, p.Active)
}

func TestListFiltersByCategoryAndActive(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	inactive := false
	_, err := svc.Create(ctx, &CreateProviderRequest{Name: "A One", Phone: "1234567", Category: "plumbing"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &CreateProviderRequest{Name: "B Two", Phone: "1234568", Category: "plumbing", Active: &inactive})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &CreateProviderRequest{Name: "C Three", Phone: "1234569", Category: "electrical"})
	require.NoError(t, err)

	plumbers, err := svc.List(ctx, "plumbing", nil, 0)
	require.NoError(t, err)
	assert.Len(t, plumbers, 2)

	activeOnly := true
	activePlumbers, err := svc.List(ctx, "plumbing", &activeOnly, 0)
	require.NoError(t, err)
	require.Len(t, activePlumbers, 1)
	assert.Equal(t, "A One", activePlumbers[0].Name)
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, &CreateProviderRequest{Name: "Ravi Kumar", Phone: "1234567", Category: "plumbing", Rating: 4.2})
	require.NoError(t, err)

	city := "Mumbai"
	updated, err := svc.Update(ctx, &UpdateProviderRequest{ID: p.ID, City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", updated.City)
	assert.Equal(t, "Ravi Kumar", updated.Name)
	assert.Equal(t, 4.2, updated.Rating)
}

func TestUpdateRejectsOutOfRangeRating(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, &CreateProviderRequest{Name: "Ravi Kumar", Phone: "1234567", Category: "plumbing"})
	require.NoError(t, err)

	bad := 7.5
	_, err = svc.Update(ctx, &UpdateProviderRequest{ID: p.ID, Rating: &bad})
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestDeleteUnknownProvider(t *testing.T) {
	svc := newTestService()
	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProviderNotFound)
}
