package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-ferre-inventory/internal/model"
	"go-ferre-inventory/internal/repository"
	"go-ferre-inventory/pkg/clock"
	"go-ferre-inventory/pkg/logger"
)

type SaleService interface {
	RecordSale(ctx context.Context, code string, quantity int) (*model.Sale, error)
	ListSales(ctx context.Context) ([]model.Sale, error)
}

type saleService struct {
	repo   *repository.Repository
	clock  clock.Clock
	events Publisher
	logger *zap.Logger
}

func NewSaleService(repo *repository.Repository, clk clock.Clock, events Publisher, l *zap.Logger) SaleService {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &saleService{
		repo:   repo,
		clock:  clk,
		events: orNop(events),
		logger: logger.OrNop(l),
	}
}

// RecordSale takes quantity units of the product with code out of stock and
// prepends a sale to the log. The stock decrement and the new sale are
// committed in one store write; on any error neither is persisted.
func (s *saleService) RecordSale(ctx context.Context, code string, quantity int) (*model.Sale, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, &ValidationError{Field: "code", Tag: "required"}
	}
	if quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Tag: "gt"}
	}

	var (
		sale      model.Sale
		remaining int
	)
	err := s.repo.Transaction(ctx, func(tx *repository.Tx) error {
		products, err := tx.Products()
		if err != nil {
			return err
		}
		idx := repository.FindByCode(products, code)
		if idx < 0 {
			return fmt.Errorf("%w: %s", ErrProductNotFound, code)
		}
		product := &products[idx]
		if product.Quantity < quantity {
			return &InsufficientStockError{Code: code, Available: product.Quantity, Requested: quantity}
		}

		product.Quantity -= quantity
		remaining = product.Quantity

		sales, err := tx.Sales()
		if err != nil {
			return err
		}
		sale = model.Sale{
			ID:          model.NewID(),
			Timestamp:   model.FormatTimestamp(s.clock.Now()),
			ProductCode: product.Code,
			ProductName: product.Name,
			Quantity:    quantity,
			Total:       lineTotal(product.Price, quantity),
		}

		tx.SetProducts(products)
		tx.SetSales(append([]model.Sale{sale}, sales...))
		return nil
	})
	if err != nil {
		s.logger.Warn("sale rejected",
			zap.String("product_code", code),
			zap.Int("quantity", quantity),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("sale recorded",
		zap.String("sale_id", sale.ID),
		zap.String("product_code", sale.ProductCode),
		zap.Int("quantity", sale.Quantity),
		zap.Float64("total", sale.Total),
		zap.Int("remaining_stock", remaining),
	)
	s.events.Publish(Event{
		Type:    "stock_update",
		Action:  "sale_recorded",
		Data:    map[string]interface{}{"sale": sale, "newStock": remaining},
		Message: fmt.Sprintf("sold %d units of '%s'", sale.Quantity, sale.ProductName),
	})
	return &sale, nil
}

// ListSales returns the log newest first.
func (s *saleService) ListSales(ctx context.Context) ([]model.Sale, error) {
	return s.repo.LoadSales(ctx)
}

func lineTotal(price float64, quantity int) float64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity))).InexactFloat64()
}
