package dto

import (
	"espetaria/internal/core/types"
	"espetaria/internal/domain/catalogs/employee"
	"espetaria/internal/domain/catalogs/product"
	"espetaria/internal/domain/catalogs/rawmaterial"
	"espetaria/internal/domain/catalogs/supply"
)

// --- Product ---

// CreateProductRequest for creating products.
type CreateProductRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name" binding:"required"`
	SalePrice   *types.Quantity `json:"salePrice"`
	Description *string         `json:"description"`
}

// ToEntity builds a Product from the request.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Code, r.Name)
	if r.SalePrice != nil {
		p.SalePrice = *r.SalePrice
	}
	p.Description = r.Description
	return p
}

// UpdateProductRequest for updating products.
type UpdateProductRequest struct {
	Name        *string         `json:"name"`
	SalePrice   *types.Quantity `json:"salePrice"`
	Description *string         `json:"description"`
	Active      *bool           `json:"active"`
	Version     int             `json:"version" binding:"required,min=1"`
}

// Apply writes the present fields onto the entity.
func (r *UpdateProductRequest) Apply(p *product.Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.SalePrice != nil {
		p.SalePrice = *r.SalePrice
	}
	if r.Description != nil {
		p.Description = r.Description
	}
	if r.Active != nil {
		p.Active = *r.Active
	}
	p.Version = r.Version
}

// --- Raw Material ---

// CreateRawMaterialRequest for creating raw materials.
type CreateRawMaterialRequest struct {
	Code         string          `json:"code"`
	Name         string          `json:"name" binding:"required"`
	Unit         string          `json:"unit"`
	CurrentStock *types.Quantity `json:"currentStock"`
	MinimumStock *types.Quantity `json:"minimumStock"`
}

// ToEntity builds a RawMaterial from the request.
func (r *CreateRawMaterialRequest) ToEntity() *rawmaterial.RawMaterial {
	m := rawmaterial.NewRawMaterial(r.Code, r.Name)
	if r.Unit != "" {
		m.Unit = r.Unit
	}
	if r.CurrentStock != nil {
		m.CurrentStock = *r.CurrentStock
	}
	if r.MinimumStock != nil {
		m.MinimumStock = *r.MinimumStock
	}
	return m
}

// UpdateRawMaterialRequest for updating raw materials.
type UpdateRawMaterialRequest struct {
	Name         *string         `json:"name"`
	Unit         *string         `json:"unit"`
	MinimumStock *types.Quantity `json:"minimumStock"`
	Version      int             `json:"version" binding:"required,min=1"`
}

// Apply writes the present fields onto the entity.
func (r *UpdateRawMaterialRequest) Apply(m *rawmaterial.RawMaterial) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Unit != nil {
		m.Unit = *r.Unit
	}
	if r.MinimumStock != nil {
		m.MinimumStock = *r.MinimumStock
	}
	m.Version = r.Version
}

// --- Supply ---

// CreateSupplyRequest for creating supplies.
type CreateSupplyRequest struct {
	Code         string          `json:"code"`
	Name         string          `json:"name" binding:"required"`
	Unit         string          `json:"unit" binding:"required"`
	CurrentStock *types.Quantity `json:"currentStock"`
	MinimumStock *types.Quantity `json:"minimumStock"`
}

// ToEntity builds a Supply from the request.
func (r *CreateSupplyRequest) ToEntity() *supply.Supply {
	s := supply.NewSupply(r.Code, r.Name, r.Unit)
	if r.CurrentStock != nil {
		s.CurrentStock = *r.CurrentStock
	}
	if r.MinimumStock != nil {
		s.MinimumStock = *r.MinimumStock
	}
	return s
}

// UpdateSupplyRequest for updating supplies.
type UpdateSupplyRequest struct {
	Name         *string         `json:"name"`
	Unit         *string         `json:"unit"`
	MinimumStock *types.Quantity `json:"minimumStock"`
	Version      int             `json:"version" binding:"required,min=1"`
}

// Apply writes the present fields onto the entity.
func (r *UpdateSupplyRequest) Apply(s *supply.Supply) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Unit != nil {
		s.Unit = *r.Unit
	}
	if r.MinimumStock != nil {
		s.MinimumStock = *r.MinimumStock
	}
	s.Version = r.Version
}

// SupplyRecipeRequest creates or replaces a supply sub-recipe.
type SupplyRecipeRequest struct {
	YieldAmount types.Quantity          `json:"yieldAmount" binding:"required"`
	Items       []SupplyRecipeItemInput `json:"items" binding:"required,min=1"`
}

// SupplyRecipeItemInput is one ingredient line of a sub-recipe.
type SupplyRecipeItemInput struct {
	IngredientID string         `json:"ingredientId" binding:"required"`
	Quantity     types.Quantity `json:"quantity" binding:"required"`
	Unit         string         `json:"unit"`
}

// --- Employee ---

// CreateEmployeeRequest for creating employees.
type CreateEmployeeRequest struct {
	Code string `json:"code"`
	Name string `json:"name" binding:"required"`
	Role string `json:"role"`
}

// ToEntity builds an Employee from the request.
func (r *CreateEmployeeRequest) ToEntity() *employee.Employee {
	e := employee.NewEmployee(r.Code, r.Name)
	e.Role = r.Role
	return e
}

// UpdateEmployeeRequest for updating employees.
type UpdateEmployeeRequest struct {
	Name    *string `json:"name"`
	Role    *string `json:"role"`
	Active  *bool   `json:"active"`
	Version int     `json:"version" binding:"required,min=1"`
}

// Apply writes the present fields onto the entity.
func (r *UpdateEmployeeRequest) Apply(e *employee.Employee) {
	if r.Name != nil {
		e.Name = *r.Name
	}
	if r.Role != nil {
		e.Role = *r.Role
	}
	if r.Active != nil {
		e.Active = *r.Active
	}
	e.Version = r.Version
}
