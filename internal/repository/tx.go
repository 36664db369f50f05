package repository

import (
	"context"
	"fmt"

	"go-ferre-inventory/internal/model"
	"go-ferre-inventory/pkg/storage"
)

// Tx is the working set of one read-modify-write operation. Collections are
// loaded on first access; the ones replaced through a Set method are written
// together when the transaction function returns nil.
type Tx struct {
	ctx   context.Context
	store storage.Store
	keys  Keys

	products  []model.Product
	suppliers []model.Supplier
	sales     []model.Sale

	productsLoaded, suppliersLoaded, salesLoaded bool
	productsDirty, suppliersDirty, salesDirty    bool
}

// Transaction runs fn with exclusive access to the collections and commits
// every modified collection with a single Store.PutMany. If fn returns an
// error nothing is written.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &Tx{ctx: ctx, store: r.store, keys: r.keys}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.commit()
}

// Products returns a copy of the product collection.
func (tx *Tx) Products() ([]model.Product, error) {
	if !tx.productsLoaded {
		items, err := load[model.Product](tx.ctx, tx.store, tx.keys.Products)
		if err != nil {
			return nil, err
		}
		tx.products, tx.productsLoaded = items, true
	}
	return append([]model.Product(nil), tx.products...), nil
}

func (tx *Tx) SetProducts(products []model.Product) {
	tx.products = append([]model.Product{}, products...)
	tx.productsLoaded, tx.productsDirty = true, true
}

func (tx *Tx) Suppliers() ([]model.Supplier, error) {
	if !tx.suppliersLoaded {
		items, err := load[model.Supplier](tx.ctx, tx.store, tx.keys.Suppliers)
		if err != nil {
			return nil, err
		}
		tx.suppliers, tx.suppliersLoaded = items, true
	}
	return append([]model.Supplier(nil), tx.suppliers...), nil
}

func (tx *Tx) SetSuppliers(suppliers []model.Supplier) {
	tx.suppliers = append([]model.Supplier{}, suppliers...)
	tx.suppliersLoaded, tx.suppliersDirty = true, true
}

func (tx *Tx) Sales() ([]model.Sale, error) {
	if !tx.salesLoaded {
		items, err := load[model.Sale](tx.ctx, tx.store, tx.keys.Sales)
		if err != nil {
			return nil, err
		}
		tx.sales, tx.salesLoaded = items, true
	}
	return append([]model.Sale(nil), tx.sales...), nil
}

func (tx *Tx) SetSales(sales []model.Sale) {
	tx.sales = append([]model.Sale{}, sales...)
	tx.salesLoaded, tx.salesDirty = true, true
}

func (tx *Tx) commit() error {
	entries := map[string][]byte{}

	if tx.productsDirty {
		raw, err := encode(tx.products)
		if err != nil {
			return fmt.Errorf("encode %s: %w", tx.keys.Products, err)
		}
		entries[tx.keys.Products] = raw
	}
	if tx.suppliersDirty {
		raw, err := encode(tx.suppliers)
		if err != nil {
			return fmt.Errorf("encode %s: %w", tx.keys.Suppliers, err)
		}
		entries[tx.keys.Suppliers] = raw
	}
	if tx.salesDirty {
		raw, err := encode(tx.sales)
		if err != nil {
			return fmt.Errorf("encode %s: %w", tx.keys.Sales, err)
		}
		entries[tx.keys.Sales] = raw
	}

	if len(entries) == 0 {
		return nil
	}
	if err := tx.store.PutMany(tx.ctx, entries); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
