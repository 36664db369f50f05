package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"go-ferre-inventory/internal/model"
	"go-ferre-inventory/internal/repository"
	"go-ferre-inventory/pkg/logger"
)

type CatalogService interface {
	CreateProduct(ctx context.Context, draft model.ProductDraft) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, draft model.ProductDraft) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	FindByCode(ctx context.Context, code string) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
}

type catalogService struct {
	repo   *repository.Repository
	events Publisher
	logger *zap.Logger
}

func NewCatalogService(repo *repository.Repository, events Publisher, l *zap.Logger) CatalogService {
	return &catalogService{
		repo:   repo,
		events: orNop(events),
		logger: logger.OrNop(l),
	}
}

func (s *catalogService) CreateProduct(ctx context.Context, draft model.ProductDraft) (*model.Product, error) {
	product := draft.Parse()
	if err := validateRecord(&product); err != nil {
		s.logger.Warn("product rejected", zap.Error(err))
		return nil, err
	}
	product.ID = model.NewID()

	err := s.repo.Transaction(ctx, func(tx *repository.Tx) error {
		products, err := tx.Products()
		if err != nil {
			return err
		}
		if repository.FindByCode(products, product.Code) >= 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateCode, product.Code)
		}
		tx.SetProducts(append(products, product))
		return nil
	})
	if err != nil {
		s.logger.Warn("create product failed", zap.String("product_code", product.Code), zap.Error(err))
		return nil, err
	}

	s.logger.Info("product created", zap.String("product_id", product.ID), zap.String("product_code", product.Code))
	s.events.Publish(Event{
		Type:    "stock_update",
		Action:  "product_created",
		Data:    product,
		Message: fmt.Sprintf("product '%s' created", product.Name),
	})
	return &product, nil
}

// UpdateProduct replaces the product with id wholesale. The new code must not
// belong to any other product.
func (s *catalogService) UpdateProduct(ctx context.Context, id string, draft model.ProductDraft) (*model.Product, error) {
	product := draft.Parse()
	if err := validateRecord(&product); err != nil {
		s.logger.Warn("product rejected", zap.String("product_id", id), zap.Error(err))
		return nil, err
	}
	product.ID = id

	var oldStock int
	err := s.repo.Transaction(ctx, func(tx *repository.Tx) error {
		products, err := tx.Products()
		if err != nil {
			return err
		}
		idx := repository.FindProductByID(products, id)
		if idx < 0 {
			return fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		if other := repository.FindByCode(products, product.Code); other >= 0 && other != idx {
			return fmt.Errorf("%w: %s", ErrDuplicateCode, product.Code)
		}
		oldStock = products[idx].Quantity
		products[idx] = product
		tx.SetProducts(products)
		return nil
	})
	if err != nil {
		s.logger.Warn("update product failed", zap.String("product_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("product updated",
		zap.String("product_id", id),
		zap.String("product_code", product.Code),
		zap.Int("old_stock", oldStock),
		zap.Int("new_stock", product.Quantity),
	)
	s.events.Publish(Event{
		Type:    "stock_update",
		Action:  "product_updated",
		Data:    product,
		Message: fmt.Sprintf("product '%s' updated", product.Name),
	})
	return &product, nil
}

// DeleteProduct removes the product. Sales that reference its code are kept
// as they are.
func (s *catalogService) DeleteProduct(ctx context.Context, id string) (*model.Product, error) {
	var removed model.Product
	err := s.repo.Transaction(ctx, func(tx *repository.Tx) error {
		products, err := tx.Products()
		if err != nil {
			return err
		}
		idx := repository.FindProductByID(products, id)
		if idx < 0 {
			return fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		removed = products[idx]
		tx.SetProducts(append(products[:idx], products[idx+1:]...))
		return nil
	})
	if err != nil {
		s.logger.Warn("delete product failed", zap.String("product_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("product deleted", zap.String("product_id", id), zap.String("product_code", removed.Code))
	s.events.Publish(Event{
		Type:    "stock_update",
		Action:  "product_deleted",
		Data:    removed,
		Message: fmt.Sprintf("product '%s' deleted", removed.Name),
	})
	return &removed, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	products, err := s.repo.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	idx := repository.FindProductByID(products, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return &products[idx], nil
}

// FindByCode returns the first product with the given code.
func (s *catalogService) FindByCode(ctx context.Context, code string) (*model.Product, error) {
	products, err := s.repo.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	idx := repository.FindByCode(products, code)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, code)
	}
	return &products[idx], nil
}

func (s *catalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.repo.LoadProducts(ctx)
}
