package dto

import (
	"locafest/internal/core/types"
	"locafest/internal/domain/material"
)

// CreateMaterialRequest is the request body for creating a material.
type CreateMaterialRequest struct {
	Name          string            `json:"name" binding:"required"`
	Category      material.Category `json:"category" binding:"required"`
	Unit          string            `json:"unit"`
	SubUnitQty    *types.Quantity   `json:"subUnitQty,omitempty"`
	Quantity      types.Quantity    `json:"quantity"`
	PurchasePrice types.Money       `json:"purchasePrice"`
	ResalePrice   types.Money       `json:"resalePrice"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateMaterialRequest) ToEntity() *material.Material {
	return &material.Material{
		Name:          r.Name,
		Category:      r.Category,
		Unit:          r.Unit,
		SubUnitQty:    r.SubUnitQty,
		Quantity:      r.Quantity,
		PurchasePrice: r.PurchasePrice,
		ResalePrice:   r.ResalePrice,
	}
}

// UpdateMaterialRequest is the request body for updating a material.
// On-hand quantity is adjusted through stock movements, never edited here.
type UpdateMaterialRequest struct {
	Name          string            `json:"name" binding:"required"`
	Category      material.Category `json:"category" binding:"required"`
	Unit          string            `json:"unit"`
	SubUnitQty    *types.Quantity   `json:"subUnitQty,omitempty"`
	PurchasePrice types.Money       `json:"purchasePrice"`
	ResalePrice   types.Money       `json:"resalePrice"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateMaterialRequest) ApplyTo(m *material.Material) {
	m.Name = r.Name
	m.Category = r.Category
	m.Unit = r.Unit
	m.SubUnitQty = r.SubUnitQty
	m.PurchasePrice = r.PurchasePrice
	m.ResalePrice = r.ResalePrice
}

// MaterialListParams are query parameters for listing materials.
type MaterialListParams struct {
	ListParams
	Category string `form:"category"`
}
