package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ferre-inventory/internal/model"
)

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("parsed form is findable by code", func(t *testing.T) {
		repo := newTestRepo(t)
		pub := &recordingPublisher{}
		svc := newCatalog(t, repo, pub)

		created, err := svc.CreateProduct(ctx, draft(" P010 ", " Martillo ", "12.5", "8", "2"))
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		found, err := svc.FindByCode(ctx, "P010")
		require.NoError(t, err)
		assert.Equal(t, model.Product{ID: created.ID, Code: "P010", Name: "Martillo", Price: 12.5, Quantity: 8, MinStock: 2}, *found)
		assert.Equal(t, []string{"product_created"}, pub.actions())
	})

	t.Run("unparseable numbers default to zero", func(t *testing.T) {
		svc := newCatalog(t, newTestRepo(t), nil)

		created, err := svc.CreateProduct(ctx, draft("P011", "Clavos", "abc", "", "x"))
		require.NoError(t, err)
		assert.Equal(t, 0.0, created.Price)
		assert.Equal(t, 0, created.Quantity)
		assert.Equal(t, 0, created.MinStock)
	})

	t.Run("missing code or name", func(t *testing.T) {
		repo := newTestRepo(t)
		svc := newCatalog(t, repo, nil)

		_, err := svc.CreateProduct(ctx, draft("   ", "Clavos", "1", "1", "1"))
		assert.ErrorIs(t, err, ErrValidation)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "code", verr.Field)

		_, err = svc.CreateProduct(ctx, draft("P1", "", "1", "1", "1"))
		assert.ErrorIs(t, err, ErrValidation)

		products, err := svc.ListProducts(ctx)
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("negative numbers are rejected", func(t *testing.T) {
		svc := newCatalog(t, newTestRepo(t), nil)
		_, err := svc.CreateProduct(ctx, draft("P1", "Clavos", "-1", "1", "1"))
		assert.ErrorIs(t, err, ErrValidation)
		_, err = svc.CreateProduct(ctx, draft("P1", "Clavos", "1", "-3", "1"))
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("duplicate code", func(t *testing.T) {
		repo := newTestRepo(t)
		svc := newCatalog(t, repo, nil)

		_, err := svc.CreateProduct(ctx, draft("P001", "Tornillo", "0.5", "120", "10"))
		require.NoError(t, err)

		_, err = svc.CreateProduct(ctx, draft("P001", "Otro", "1", "1", "1"))
		assert.ErrorIs(t, err, ErrDuplicateCode)

		products, err := svc.ListProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, products, 1)
		assert.Equal(t, "Tornillo", products[0].Name)
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	base := []model.Product{
		{ID: "a", Code: "P001", Name: "Tornillo", Price: 0.5, Quantity: 120, MinStock: 10},
		{ID: "b", Code: "P002", Name: "Taladro", Price: 45, Quantity: 12, MinStock: 2},
	}

	t.Run("replaces the record wholesale", func(t *testing.T) {
		repo := newTestRepo(t)
		seedProducts(t, repo, base...)
		svc := newCatalog(t, repo, nil)

		updated, err := svc.UpdateProduct(ctx, "b", draft("P002", "Taladro Pro", "50", "", "3"))
		require.NoError(t, err)
		assert.Equal(t, model.Product{ID: "b", Code: "P002", Name: "Taladro Pro", Price: 50, Quantity: 0, MinStock: 3}, *updated)

		products, _ := svc.ListProducts(ctx)
		assert.Equal(t, base[0], products[0])
		assert.Equal(t, *updated, products[1])
	})

	t.Run("code may change to an unused one", func(t *testing.T) {
		repo := newTestRepo(t)
		seedProducts(t, repo, base...)
		svc := newCatalog(t, repo, nil)

		_, err := svc.UpdateProduct(ctx, "a", draft("P100", "Tornillo", "0.5", "120", "10"))
		require.NoError(t, err)
		_, err = svc.FindByCode(ctx, "P001")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("code colliding with another product", func(t *testing.T) {
		repo := newTestRepo(t)
		seedProducts(t, repo, base...)
		svc := newCatalog(t, repo, nil)

		_, err := svc.UpdateProduct(ctx, "a", draft("P002", "Tornillo", "0.5", "120", "10"))
		assert.ErrorIs(t, err, ErrDuplicateCode)

		products, _ := svc.ListProducts(ctx)
		assert.Equal(t, base, products)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := newTestRepo(t)
		seedProducts(t, repo, base...)
		svc := newCatalog(t, repo, nil)

		_, err := svc.UpdateProduct(ctx, "zzz", draft("P009", "X", "1", "1", "1"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("validation happens before lookup", func(t *testing.T) {
		svc := newCatalog(t, newTestRepo(t), nil)
		_, err := svc.UpdateProduct(ctx, "zzz", draft("", "X", "1", "1", "1"))
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	base := []model.Product{
		{ID: "a", Code: "P001", Name: "Tornillo"},
		{ID: "b", Code: "P002", Name: "Taladro"},
		{ID: "c", Code: "P003", Name: "Cemento"},
		{ID: "d", Code: "P004", Name: "Lija"},
	}

	t.Run("removes exactly that record and keeps order", func(t *testing.T) {
		repo := newTestRepo(t)
		seedProducts(t, repo, base...)
		pub := &recordingPublisher{}
		svc := newCatalog(t, repo, pub)

		removed, err := svc.DeleteProduct(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, base[1], *removed)

		products, _ := svc.ListProducts(ctx)
		assert.Equal(t, []model.Product{base[0], base[2], base[3]}, products)
		assert.Equal(t, []string{"product_deleted"}, pub.actions())
	})

	t.Run("sales referencing the code are untouched", func(t *testing.T) {
		repo := newTestRepo(t)
		seedProducts(t, repo, base...)
		sales := []model.Sale{{ID: "s1", ProductCode: "P001", ProductName: "Tornillo", Quantity: 1, Total: 0.5}}
		require.NoError(t, repo.SaveSales(ctx, sales))
		svc := newCatalog(t, repo, nil)

		_, err := svc.DeleteProduct(ctx, "a")
		require.NoError(t, err)

		got, err := repo.LoadSales(ctx)
		require.NoError(t, err)
		assert.Equal(t, sales, got)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := newTestRepo(t)
		seedProducts(t, repo, base...)
		svc := newCatalog(t, repo, nil)

		_, err := svc.DeleteProduct(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)

		products, _ := svc.ListProducts(ctx)
		assert.Len(t, products, 4)
	})
}

func TestGetProduct(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seedProducts(t, repo, model.Product{ID: "a", Code: "P001", Name: "Tornillo"})
	svc := newCatalog(t, repo, nil)

	p, err := svc.GetProduct(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "P001", p.Code)

	_, err = svc.GetProduct(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)
}
