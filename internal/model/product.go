package model

// Product is one stock-keeping line of the catalog. Code is unique across
// the collection; ID is assigned at creation and never changes.
type Product struct {
	ID       string  `json:"id"`
	Code     string  `json:"code" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
	MinStock int     `json:"minStock" validate:"gte=0"`
}

// IsLowStock reports whether the quantity has reached the reorder level.
func (p Product) IsLowStock() bool {
	return p.Quantity <= p.MinStock
}

// ProductDraft carries the raw form values of the product screen.
type ProductDraft struct {
	Code     FormValue `json:"code"`
	Name     FormValue `json:"name"`
	Price    FormValue `json:"price"`
	Quantity FormValue `json:"quantity"`
	MinStock FormValue `json:"minStock"`
}

// Parse trims text fields and converts numeric ones, defaulting anything
// unparseable to zero. The ID is left empty.
func (d ProductDraft) Parse() Product {
	return Product{
		Code:     d.Code.Text(),
		Name:     d.Name.Text(),
		Price:    d.Price.Float(),
		Quantity: d.Quantity.Int(),
		MinStock: d.MinStock.Int(),
	}
}
