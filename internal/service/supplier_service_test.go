package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-ferre-inventory/internal/model"
)

func supplierDraft(name, phone, email, desc string) model.SupplierDraft {
	return model.SupplierDraft{
		Name:               model.FormValue(name),
		Phone:              model.FormValue(phone),
		Email:              model.FormValue(email),
		ProductDescription: model.FormValue(desc),
	}
}

func TestSupplierService(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	pub := &recordingPublisher{}
	svc := NewSupplierService(repo, pub, zaptest.NewLogger(t))

	a, err := svc.CreateSupplier(ctx, supplierDraft(" Ferremayor ", "312111222", "ventas@ferremayor.com", "Cemento"))
	require.NoError(t, err)
	assert.Equal(t, "Ferremayor", a.Name)

	b, err := svc.CreateSupplier(ctx, supplierDraft("Ferremayor", "", "", ""))
	require.NoError(t, err, "names are not unique")

	_, err = svc.CreateSupplier(ctx, supplierDraft("  ", "1", "", ""))
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := svc.UpdateSupplier(ctx, b.ID, supplierDraft("Herracor", "321555444", "info@herracor.com", "Herramientas"))
	require.NoError(t, err)
	assert.Equal(t, b.ID, updated.ID)

	_, err = svc.UpdateSupplier(ctx, b.ID, supplierDraft("", "", "", ""))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateSupplier(ctx, "missing", supplierDraft("X", "", "", ""))
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.GetSupplier(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Herracor", got.Name)

	_, err = svc.DeleteSupplier(ctx, a.ID)
	require.NoError(t, err)
	_, err = svc.DeleteSupplier(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := svc.ListSuppliers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, *updated, list[0])

	assert.Equal(t, []string{"supplier_created", "supplier_created", "supplier_updated", "supplier_deleted"}, pub.actions())
}
