package model

// Supplier is a free-form directory entry. ProductDescription is plain text
// and is not linked to any product code.
type Supplier struct {
	ID                 string `json:"id"`
	Name               string `json:"name" validate:"required"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
	ProductDescription string `json:"productDescription"`
}

type SupplierDraft struct {
	Name               FormValue `json:"name"`
	Phone              FormValue `json:"phone"`
	Email              FormValue `json:"email"`
	ProductDescription FormValue `json:"productDescription"`
}

func (d SupplierDraft) Parse() Supplier {
	return Supplier{
		Name:               d.Name.Text(),
		Phone:              d.Phone.Text(),
		Email:              d.Email.Text(),
		ProductDescription: d.ProductDescription.Text(),
	}
}
