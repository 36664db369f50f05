package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-ferre-inventory/internal/model"
	"go-ferre-inventory/internal/repository"
	"go-ferre-inventory/pkg/clock"
	"go-ferre-inventory/pkg/storage"
)

var saleTime = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

func newSales(t *testing.T, repo *repository.Repository, pub Publisher) SaleService {
	return NewSaleService(repo, clock.NewMockClock(saleTime), pub, zaptest.NewLogger(t))
}

func TestRecordSale_Scenario(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seedProducts(t, repo, model.Product{ID: "a", Code: "P001", Name: "Tornillo", Price: 0.5, Quantity: 120, MinStock: 10})
	pub := &recordingPublisher{}
	svc := newSales(t, repo, pub)

	sale, err := svc.RecordSale(ctx, "P001", 5)
	require.NoError(t, err)

	assert.NotEmpty(t, sale.ID)
	assert.Equal(t, "2024-05-01T10:30:00.000Z", sale.Timestamp)
	assert.Equal(t, "P001", sale.ProductCode)
	assert.Equal(t, "Tornillo", sale.ProductName)
	assert.Equal(t, 5, sale.Quantity)
	assert.Equal(t, 2.5, sale.Total)

	products, err := repo.LoadProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Product{ID: "a", Code: "P001", Name: "Tornillo", Price: 0.5, Quantity: 115, MinStock: 10}, products[0])

	sales, err := repo.LoadSales(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Sale{*sale}, sales)
	assert.Equal(t, []string{"sale_recorded"}, pub.actions())
}

func TestRecordSale_PrependsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seedProducts(t, repo,
		model.Product{ID: "a", Code: "P001", Name: "Tornillo", Price: 0.5, Quantity: 120},
		model.Product{ID: "c", Code: "P003", Name: "Cemento 50kg", Price: 7.5, Quantity: 40},
	)
	clk := clock.NewMockClock(saleTime)
	svc := NewSaleService(repo, clk, nil, zaptest.NewLogger(t))

	first, err := svc.RecordSale(ctx, "P001", 1)
	require.NoError(t, err)
	clk.Advance(time.Minute)
	second, err := svc.RecordSale(ctx, "P003", 3)
	require.NoError(t, err)

	assert.Equal(t, 22.5, second.Total)

	sales, err := svc.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, second.ID, sales[0].ID)
	assert.Equal(t, first.ID, sales[1].ID)
	assert.True(t, sales[0].Time().After(sales[1].Time()))
}

func TestRecordSale_ExactStockEmptiesProduct(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seedProducts(t, repo, model.Product{ID: "b", Code: "P002", Name: "Taladro", Price: 45, Quantity: 12, MinStock: 2})
	svc := newSales(t, repo, nil)

	sale, err := svc.RecordSale(ctx, "P002", 12)
	require.NoError(t, err)
	assert.Equal(t, 540.0, sale.Total)

	products, _ := repo.LoadProducts(ctx)
	assert.Equal(t, 0, products[0].Quantity)
}

func TestRecordSale_Rejections(t *testing.T) {
	ctx := context.Background()
	initial := []model.Product{{ID: "a", Code: "P001", Name: "Tornillo", Price: 0.5, Quantity: 3}}
	initialSales := []model.Sale{{ID: "old", ProductCode: "P001", ProductName: "Tornillo", Quantity: 1, Total: 0.5}}

	tests := []struct {
		name     string
		code     string
		quantity int
		want     error
	}{
		{"empty code", "  ", 1, ErrValidation},
		{"zero quantity", "P001", 0, ErrValidation},
		{"negative quantity", "P001", -2, ErrValidation},
		{"unknown product", "P999", 1, ErrProductNotFound},
		{"more than stock", "P001", 4, ErrInsufficientStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepo(t)
			seedProducts(t, repo, initial...)
			require.NoError(t, repo.SaveSales(ctx, initialSales))
			pub := &recordingPublisher{}
			svc := newSales(t, repo, pub)

			sale, err := svc.RecordSale(ctx, tt.code, tt.quantity)
			assert.Nil(t, sale)
			assert.ErrorIs(t, err, tt.want)

			products, _ := repo.LoadProducts(ctx)
			sales, _ := repo.LoadSales(ctx)
			assert.Equal(t, initial, products)
			assert.Equal(t, initialSales, sales)
			assert.Empty(t, pub.actions())
		})
	}
}

func TestRecordSale_InsufficientStockDetails(t *testing.T) {
	repo := newTestRepo(t)
	seedProducts(t, repo, model.Product{ID: "a", Code: "P001", Name: "Tornillo", Quantity: 3})
	svc := newSales(t, repo, nil)

	_, err := svc.RecordSale(context.Background(), "P001", 10)
	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, 10, stockErr.Requested)
}

// commitFailingStore accepts single writes but fails batched commits.
type commitFailingStore struct {
	*storage.MemoryStore
}

func (commitFailingStore) PutMany(context.Context, map[string][]byte) error {
	return errors.New("connection reset")
}

func TestRecordSale_FailedCommitLeavesBothCollections(t *testing.T) {
	ctx := context.Background()
	repo := repository.New(commitFailingStore{storage.NewMemoryStore()}, repository.DefaultKeys(""))
	initial := []model.Product{{ID: "a", Code: "P001", Name: "Tornillo", Price: 0.5, Quantity: 120}}
	require.NoError(t, repo.SaveProducts(ctx, initial))
	svc := newSales(t, repo, nil)

	_, err := svc.RecordSale(ctx, "P001", 5)
	require.Error(t, err)

	products, _ := repo.LoadProducts(ctx)
	sales, _ := repo.LoadSales(ctx)
	assert.Equal(t, initial, products, "stock must not be decremented without the sale")
	assert.Empty(t, sales)
}

func TestRecordSale_LaterEditDoesNotRewriteHistory(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seedProducts(t, repo, model.Product{ID: "a", Code: "P001", Name: "Tornillo", Price: 0.5, Quantity: 120})
	sales := newSales(t, repo, nil)
	catalog := newCatalog(t, repo, nil)

	_, err := sales.RecordSale(ctx, "P001", 2)
	require.NoError(t, err)

	_, err = catalog.UpdateProduct(ctx, "a", draft("P001", "Tornillo inox", "0.9", "118", "0"))
	require.NoError(t, err)

	log, err := sales.ListSales(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Tornillo", log[0].ProductName)
	assert.Equal(t, 1.0, log[0].Total)
}

func TestRecordSale_ConcurrentCallsNeverOversell(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seedProducts(t, repo, model.Product{ID: "a", Code: "P001", Name: "Tornillo", Price: 1, Quantity: 10})
	svc := newSales(t, repo, nil)

	results := make(chan error, 20)
	for i := 0; i < 20; i++ {
		go func() {
			_, err := svc.RecordSale(ctx, "P001", 1)
			results <- err
		}()
	}

	ok, rejected := 0, 0
	for i := 0; i < 20; i++ {
		if err := <-results; err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientStock)
			rejected++
		}
	}
	assert.Equal(t, 10, ok)
	assert.Equal(t, 10, rejected)

	products, _ := repo.LoadProducts(ctx)
	assert.Equal(t, 0, products[0].Quantity)
	sales, _ := repo.LoadSales(ctx)
	assert.Len(t, sales, 10)
}

func TestRecordSale_TotalIsRoundedToDecimal(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seedProducts(t, repo, model.Product{ID: "d", Code: "P004", Name: "Arandela", Price: 0.1, Quantity: 10})

	sale, err := newSales(t, repo, nil).RecordSale(ctx, "P004", 3)
	require.NoError(t, err)
	assert.Equal(t, 0.3, sale.Total, "float price*qty would give 0.30000000000000004")
}
