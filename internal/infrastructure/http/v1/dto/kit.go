package dto

import (
	"locafest/internal/core/types"
	"locafest/internal/domain/kit"
)

// KitComponentRequest is one material line of a kit.
type KitComponentRequest struct {
	MaterialID int64          `json:"materialId" binding:"required"`
	Quantity   types.Quantity `json:"quantity" binding:"required"`
}

// CreateKitRequest is the request body for composing a kit.
type CreateKitRequest struct {
	Name       string                `json:"name" binding:"required"`
	Price      types.Money           `json:"price"`
	Components []KitComponentRequest `json:"components" binding:"required"`
}

// ToComponents converts the request lines into domain components.
func (r *CreateKitRequest) ToComponents() []kit.Component {
	components := make([]kit.Component, 0, len(r.Components))
	for _, c := range r.Components {
		components = append(components, kit.Component{
			MaterialID: c.MaterialID,
			Quantity:   c.Quantity,
		})
	}
	return components
}

// KitListParams are query parameters for listing kits.
type KitListParams struct {
	ListParams
	Status string `form:"status"`
}
