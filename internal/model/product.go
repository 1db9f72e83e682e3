// Package model contains domain models shared across layers.
package model

// ProductType classifies how a product is fulfilled. The set is closed:
// only physical products ship in quantity, digital and service products
// are licensed once per order.
type ProductType string

const (
	ProductTypePhysical ProductType = "physical"
	ProductTypeDigital  ProductType = "digital"
	ProductTypeService  ProductType = "service"
)

// Valid reports whether t is one of the known product types.
func (t ProductType) Valid() bool {
	switch t {
	case ProductTypePhysical, ProductTypeDigital, ProductTypeService:
		return true
	}
	return false
}

// Product is a catalog entry as consumed by the cart engine.
// SamplePrice is nil when the supplier does not offer trial units.
type Product struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Price       float64     `json:"price"`
	SamplePrice *float64    `json:"samplePrice,omitempty"`
	Image       string      `json:"image"`
	ProductType ProductType `json:"productType"`
	SupplierID  string      `json:"supplierId,omitempty"`
}
