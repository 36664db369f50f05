package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"go-ferre-inventory/internal/model"
	"go-ferre-inventory/internal/repository"
	"go-ferre-inventory/pkg/logger"
)

type SupplierService interface {
	CreateSupplier(ctx context.Context, draft model.SupplierDraft) (*model.Supplier, error)
	UpdateSupplier(ctx context.Context, id string, draft model.SupplierDraft) (*model.Supplier, error)
	DeleteSupplier(ctx context.Context, id string) (*model.Supplier, error)
	GetSupplier(ctx context.Context, id string) (*model.Supplier, error)
	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
}

type supplierService struct {
	repo   *repository.Repository
	events Publisher
	logger *zap.Logger
}

func NewSupplierService(repo *repository.Repository, events Publisher, l *zap.Logger) SupplierService {
	return &supplierService{
		repo:   repo,
		events: orNop(events),
		logger: logger.OrNop(l),
	}
}

func (s *supplierService) CreateSupplier(ctx context.Context, draft model.SupplierDraft) (*model.Supplier, error) {
	supplier := draft.Parse()
	if err := validateRecord(&supplier); err != nil {
		return nil, err
	}
	supplier.ID = model.NewID()

	err := s.repo.Transaction(ctx, func(tx *repository.Tx) error {
		suppliers, err := tx.Suppliers()
		if err != nil {
			return err
		}
		tx.SetSuppliers(append(suppliers, supplier))
		return nil
	})
	if err != nil {
		s.logger.Error("create supplier failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("supplier created", zap.String("supplier_id", supplier.ID), zap.String("name", supplier.Name))
	s.events.Publish(Event{Type: "directory_update", Action: "supplier_created", Data: supplier})
	return &supplier, nil
}

func (s *supplierService) UpdateSupplier(ctx context.Context, id string, draft model.SupplierDraft) (*model.Supplier, error) {
	supplier := draft.Parse()
	if err := validateRecord(&supplier); err != nil {
		return nil, err
	}
	supplier.ID = id

	err := s.repo.Transaction(ctx, func(tx *repository.Tx) error {
		suppliers, err := tx.Suppliers()
		if err != nil {
			return err
		}
		idx := repository.FindSupplierByID(suppliers, id)
		if idx < 0 {
			return fmt.Errorf("%w: supplier %s", ErrNotFound, id)
		}
		suppliers[idx] = supplier
		tx.SetSuppliers(suppliers)
		return nil
	})
	if err != nil {
		s.logger.Warn("update supplier failed", zap.String("supplier_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("supplier updated", zap.String("supplier_id", id))
	s.events.Publish(Event{Type: "directory_update", Action: "supplier_updated", Data: supplier})
	return &supplier, nil
}

func (s *supplierService) DeleteSupplier(ctx context.Context, id string) (*model.Supplier, error) {
	var removed model.Supplier
	err := s.repo.Transaction(ctx, func(tx *repository.Tx) error {
		suppliers, err := tx.Suppliers()
		if err != nil {
			return err
		}
		idx := repository.FindSupplierByID(suppliers, id)
		if idx < 0 {
			return fmt.Errorf("%w: supplier %s", ErrNotFound, id)
		}
		removed = suppliers[idx]
		tx.SetSuppliers(append(suppliers[:idx], suppliers[idx+1:]...))
		return nil
	})
	if err != nil {
		s.logger.Warn("delete supplier failed", zap.String("supplier_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("supplier deleted", zap.String("supplier_id", id))
	s.events.Publish(Event{Type: "directory_update", Action: "supplier_deleted", Data: removed})
	return &removed, nil
}

func (s *supplierService) GetSupplier(ctx context.Context, id string) (*model.Supplier, error) {
	suppliers, err := s.repo.LoadSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	idx := repository.FindSupplierByID(suppliers, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: supplier %s", ErrNotFound, id)
	}
	return &suppliers[idx], nil
}

func (s *supplierService) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	return s.repo.LoadSuppliers(ctx)
}
