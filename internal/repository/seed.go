package repository

import (
	"context"

	"go-ferre-inventory/internal/model"
)

// DefaultProducts is the catalog written on first run.
var DefaultProducts = []model.Product{
	{Code: "P001", Name: "Tornillo 3/8", Price: 0.5, Quantity: 120, MinStock: 10},
	{Code: "P002", Name: "Taladro", Price: 45.0, Quantity: 12, MinStock: 2},
	{Code: "P003", Name: "Cemento 50kg", Price: 7.5, Quantity: 40, MinStock: 5},
}

// DefaultSuppliers is the supplier directory written on first run.
var DefaultSuppliers = []model.Supplier{
	{Name: "Ferremayor", Phone: "312111222", Email: "ventas@ferremayor.com", ProductDescription: "Cemento"},
	{Name: "Herracor", Phone: "321555444", Email: "info@herracor.com", ProductDescription: "Herramientas"},
}

// BootstrapResult reports what Bootstrap changed.
type BootstrapResult struct {
	SeededProducts  bool
	SeededSuppliers bool
	BackfilledIDs   int
}

// Bootstrap seeds products and suppliers when their collection is empty and
// assigns an ID to any stored record that lacks one. Sales are never seeded.
func (r *Repository) Bootstrap(ctx context.Context) (BootstrapResult, error) {
	var res BootstrapResult

	err := r.Transaction(ctx, func(tx *Tx) error {
		products, err := tx.Products()
		if err != nil {
			return err
		}
		if len(products) == 0 {
			for _, p := range DefaultProducts {
				p.ID = model.NewID()
				products = append(products, p)
			}
			tx.SetProducts(products)
			res.SeededProducts = true
		} else if n := backfillProducts(products); n > 0 {
			tx.SetProducts(products)
			res.BackfilledIDs += n
		}

		suppliers, err := tx.Suppliers()
		if err != nil {
			return err
		}
		if len(suppliers) == 0 {
			for _, s := range DefaultSuppliers {
				s.ID = model.NewID()
				suppliers = append(suppliers, s)
			}
			tx.SetSuppliers(suppliers)
			res.SeededSuppliers = true
		} else if n := backfillSuppliers(suppliers); n > 0 {
			tx.SetSuppliers(suppliers)
			res.BackfilledIDs += n
		}

		sales, err := tx.Sales()
		if err != nil {
			return err
		}
		if n := backfillSales(sales); n > 0 {
			tx.SetSales(sales)
			res.BackfilledIDs += n
		}
		return nil
	})

	return res, err
}

func backfillProducts(items []model.Product) int {
	n := 0
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = model.NewID()
			n++
		}
	}
	return n
}

func backfillSuppliers(items []model.Supplier) int {
	n := 0
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = model.NewID()
			n++
		}
	}
	return n
}

func backfillSales(items []model.Sale) int {
	n := 0
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = model.NewID()
			n++
		}
	}
	return n
}
