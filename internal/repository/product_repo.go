package repository

import "go-ferre-inventory/internal/model"

// FindByCode returns the index of the first product with code, or -1.
func FindByCode(products []model.Product, code string) int {
	for i, p := range products {
		if p.Code == code {
			return i
		}
	}
	return -1
}

// FindProductByID returns the index of the product with id, or -1.
func FindProductByID(products []model.Product, id string) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// FindSupplierByID returns the index of the supplier with id, or -1.
func FindSupplierByID(suppliers []model.Supplier, id string) int {
	for i, s := range suppliers {
		if s.ID == id {
			return i
		}
	}
	return -1
}
