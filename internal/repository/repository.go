package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go-ferre-inventory/internal/model"
	"go-ferre-inventory/pkg/storage"
)

// Keys names the store entries of the three collections.
type Keys struct {
	Products  string
	Suppliers string
	Sales     string
}

// DefaultKeys derives the collection keys from a prefix.
func DefaultKeys(prefix string) Keys {
	return Keys{
		Products:  prefix + "products_v1",
		Suppliers: prefix + "suppliers_v1",
		Sales:     prefix + "sales_v1",
	}
}

// All returns every collection key.
func (k Keys) All() []string {
	return []string{k.Products, k.Suppliers, k.Sales}
}

// Repository gives typed whole-collection access over a Store. There is no
// partial update: callers load a full collection, change it in memory and
// save it back, preferably through Transaction.
type Repository struct {
	store storage.Store
	keys  Keys

	// mu serialises every read-modify-write so two operations never
	// interleave between their load and their save.
	mu sync.Mutex
}

func New(store storage.Store, keys Keys) *Repository {
	return &Repository{store: store, keys: keys}
}

// Keys returns the collection keys in use.
func (r *Repository) Keys() Keys { return r.keys }

func (r *Repository) LoadProducts(ctx context.Context) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return load[model.Product](ctx, r.store, r.keys.Products)
}

func (r *Repository) SaveProducts(ctx context.Context, products []model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return save(ctx, r.store, r.keys.Products, products)
}

func (r *Repository) LoadSuppliers(ctx context.Context) ([]model.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return load[model.Supplier](ctx, r.store, r.keys.Suppliers)
}

func (r *Repository) SaveSuppliers(ctx context.Context, suppliers []model.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return save(ctx, r.store, r.keys.Suppliers, suppliers)
}

// LoadSales returns the sales log, newest first.
func (r *Repository) LoadSales(ctx context.Context) ([]model.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return load[model.Sale](ctx, r.store, r.keys.Sales)
}

func (r *Repository) SaveSales(ctx context.Context, sales []model.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return save(ctx, r.store, r.keys.Sales, sales)
}

// Snapshot is a consistent read of all three collections.
type Snapshot struct {
	Products  []model.Product  `json:"products"`
	Suppliers []model.Supplier `json:"suppliers"`
	Sales     []model.Sale     `json:"sales"`
}

// Snapshot loads every collection under the same lock.
func (r *Repository) Snapshot(ctx context.Context) (*Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := load[model.Product](ctx, r.store, r.keys.Products)
	if err != nil {
		return nil, err
	}
	suppliers, err := load[model.Supplier](ctx, r.store, r.keys.Suppliers)
	if err != nil {
		return nil, err
	}
	sales, err := load[model.Sale](ctx, r.store, r.keys.Sales)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Products: products, Suppliers: suppliers, Sales: sales}, nil
}

// Reset removes all three collections.
func (r *Repository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Delete(ctx, r.keys.All()...)
}

func load[T any](ctx context.Context, store storage.Store, key string) ([]T, error) {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}

	items := []T{}
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func encode[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}

func save[T any](ctx context.Context, store storage.Store, key string, items []T) error {
	raw, err := encode(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
