package model

// CartItem is one line in a cart: a product plus quantity and the sample
// flag. Line identity is the embedded product ID; sample lines carry a
// synthesized unique ID so repeated sample requests never merge.
type CartItem struct {
	Product
	Quantity int  `json:"quantity"`
	IsSample bool `json:"isSample"`
}

// UnitPrice returns the price charged per unit for this line.
// Sample lines charge the sample price when the supplier set one.
func (i CartItem) UnitPrice() float64 {
	if i.IsSample && i.SamplePrice != nil {
		return *i.SamplePrice
	}
	return i.Price
}

// QuantityMutable reports whether the line's quantity may be changed.
// Sample lines and non-physical lines are locked at their initial quantity.
func (i CartItem) QuantityMutable() bool {
	return !i.IsSample && i.ProductType == ProductTypePhysical
}
