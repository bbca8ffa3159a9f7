package dto

import (
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/category"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/product"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/user"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/warehouse"
)

// --- Category ---

// CategoryRequest is the body for creating or updating a category.
type CategoryRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Status  string `json:"status" binding:"max=32"`
	Version int    `json:"version"`
}

// ToEntity converts DTO to domain entity.
func (r *CategoryRequest) ToEntity(now time.Time, userID *id.ID) *category.Category {
	c := category.NewCategory(now, r.Name)
	c.Status = r.Status
	c.UserID = userID
	return c
}

// ApplyTo applies update DTO to existing entity.
func (r *CategoryRequest) ApplyTo(c *category.Category) {
	c.Name = r.Name
	c.Status = r.Status
	if r.Version > 0 {
		c.Version = r.Version
	}
}

// --- Product ---

// ProductRequest is the body for creating or updating a product.
type ProductRequest struct {
	CategoryID id.ID            `json:"categoryId" binding:"required"`
	Code       *string          `json:"code" binding:"omitempty,max=64"`
	Name       string           `json:"name" binding:"required,max=255"`
	UnitType   product.UnitType `json:"unitType" binding:"omitempty,oneof=pcs kg"`
	Price      types.Money      `json:"price"`
	Status     string           `json:"status" binding:"max=32"`
	Comment    string           `json:"comment"`
	Version    int              `json:"version"`
}

// ToEntity converts DTO to domain entity.
func (r *ProductRequest) ToEntity(now time.Time, userID *id.ID) *product.Product {
	p := product.NewProduct(now, r.CategoryID, r.Name, r.Price)
	r.fill(p)
	p.UserID = userID
	return p
}

// ApplyTo applies update DTO to existing entity.
func (r *ProductRequest) ApplyTo(p *product.Product) {
	p.CategoryID = r.CategoryID
	p.Name = r.Name
	p.Price = r.Price
	r.fill(p)
	if r.Version > 0 {
		p.Version = r.Version
	}
}

func (r *ProductRequest) fill(p *product.Product) {
	p.Code = r.Code
	if r.UnitType != "" {
		p.UnitType = r.UnitType
	}
	p.Status = r.Status
	p.Comment = r.Comment
}

// --- Warehouse ---

// WarehouseRequest is the body for creating or updating a warehouse.
type WarehouseRequest struct {
	Name          string `json:"name" binding:"required,max=255"`
	ResponsibleID *id.ID `json:"responsibleId"`
	Version       int    `json:"version"`
}

// ToEntity converts DTO to domain entity.
func (r *WarehouseRequest) ToEntity(now time.Time, userID *id.ID) *warehouse.Warehouse {
	wh := warehouse.NewWarehouse(now, r.Name)
	wh.ResponsibleID = r.ResponsibleID
	wh.UserID = userID
	return wh
}

// ApplyTo applies update DTO to existing entity.
func (r *WarehouseRequest) ApplyTo(wh *warehouse.Warehouse) {
	wh.Name = r.Name
	wh.ResponsibleID = r.ResponsibleID
	if r.Version > 0 {
		wh.Version = r.Version
	}
}

// --- User ---

// UserRequest is the body for creating or updating a user. An empty password
// keeps the stored hash on update.
type UserRequest struct {
	PhoneNumber string      `json:"phoneNumber" binding:"required"`
	Email       *string     `json:"email" binding:"omitempty,email"`
	FirstName   string      `json:"firstName" binding:"max=150"`
	LastName    string      `json:"lastName" binding:"max=150"`
	Role        user.Role   `json:"role" binding:"omitempty,oneof=provider admin dealer warehouse"`
	Status      user.Status `json:"status" binding:"omitempty,oneof=new active disable"`
	Password    string      `json:"password"`
	Version     int         `json:"version"`
}

// ToEntity converts DTO to domain entity. The password is hashed by the caller.
func (r *UserRequest) ToEntity(now time.Time) *user.User {
	u := user.NewUser(now, r.PhoneNumber)
	r.fill(u)
	return u
}

// ApplyTo applies update DTO to existing entity.
func (r *UserRequest) ApplyTo(u *user.User) {
	u.PhoneNumber = r.PhoneNumber
	r.fill(u)
	if r.Version > 0 {
		u.Version = r.Version
	}
}

func (r *UserRequest) fill(u *user.User) {
	u.Email = r.Email
	u.FirstName = r.FirstName
	u.LastName = r.LastName
	if r.Role != "" {
		u.Role = r.Role
	}
	if r.Status != "" {
		u.Status = r.Status
	}
}
