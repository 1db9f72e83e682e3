package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductType_Valid(t *testing.T) {
	assert.True(t, ProductTypePhysical.Valid())
	assert.True(t, ProductTypeDigital.Valid())
	assert.True(t, ProductTypeService.Valid())
	assert.False(t, ProductType("subscription").Valid())
	assert.False(t, ProductType("").Valid())
}

func TestCartItem_UnitPrice(t *testing.T) {
	sample := 2.5
	p := Product{ID: "p-1", Price: 10, SamplePrice: &sample, ProductType: ProductTypePhysical}

	assert.Equal(t, 10.0, CartItem{Product: p, Quantity: 1}.UnitPrice())
	assert.Equal(t, 2.5, CartItem{Product: p, Quantity: 1, IsSample: true}.UnitPrice())

	// Sample without a sample price falls back to the regular price
	p.SamplePrice = nil
	assert.Equal(t, 10.0, CartItem{Product: p, Quantity: 1, IsSample: true}.UnitPrice())
}

func TestCartItem_QuantityMutable(t *testing.T) {
	physical := Product{ID: "p-1", ProductType: ProductTypePhysical}
	digital := Product{ID: "p-2", ProductType: ProductTypeDigital}

	assert.True(t, CartItem{Product: physical}.QuantityMutable())
	assert.False(t, CartItem{Product: physical, IsSample: true}.QuantityMutable())
	assert.False(t, CartItem{Product: digital}.QuantityMutable())
}
