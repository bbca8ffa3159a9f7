package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/category"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/product"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/user"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/warehouse"
	domainFilter "github.com/amriddinov-m/panasonic-api/internal/domain/filter"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/http/v1/dto"
)

// queryConditions turns plain query parameters into equality conditions.
// Parameters ending in _id must parse as ids; malformed ones are ignored.
func queryConditions(keys ...string) func(c *gin.Context) []domainFilter.Item {
	return func(c *gin.Context) []domainFilter.Item {
		var items []domainFilter.Item
		for _, key := range keys {
			raw := strings.TrimSpace(c.Query(key))
			if raw == "" {
				continue
			}
			if strings.HasSuffix(key, "_id") {
				v := id.ParseOptional(raw)
				if v == nil {
					continue
				}
				items = append(items, domainFilter.Eq(key, *v))
				continue
			}
			items = append(items, domainFilter.Eq(key, raw))
		}
		return items
	}
}

// NewCategoryHandler creates the category CRUD handler.
func NewCategoryHandler(base *BaseHandler, service *category.Service) *CatalogHandler[*category.Category, dto.CategoryRequest] {
	return NewCatalogHandler(base, CatalogHandlerConfig[*category.Category, dto.CategoryRequest]{
		Service:    service.CatalogService,
		EntityName: "category",
		MapCreate: func(req *dto.CategoryRequest, now time.Time, userID *id.ID) (*category.Category, error) {
			return req.ToEntity(now, userID), nil
		},
		MapUpdate: func(req *dto.CategoryRequest, existing *category.Category) error {
			req.ApplyTo(existing)
			return nil
		},
		Conditions: queryConditions("status"),
	})
}

// NewProductHandler creates the product CRUD handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *CatalogHandler[*product.Product, dto.ProductRequest] {
	return NewCatalogHandler(base, CatalogHandlerConfig[*product.Product, dto.ProductRequest]{
		Service:    service.CatalogService,
		EntityName: "product",
		MapCreate: func(req *dto.ProductRequest, now time.Time, userID *id.ID) (*product.Product, error) {
			return req.ToEntity(now, userID), nil
		},
		MapUpdate: func(req *dto.ProductRequest, existing *product.Product) error {
			req.ApplyTo(existing)
			return nil
		},
		Conditions: queryConditions("category_id", "status", "unit_type"),
	})
}

// NewWarehouseHandler creates the warehouse CRUD handler.
func NewWarehouseHandler(base *BaseHandler, service *warehouse.Service) *CatalogHandler[*warehouse.Warehouse, dto.WarehouseRequest] {
	return NewCatalogHandler(base, CatalogHandlerConfig[*warehouse.Warehouse, dto.WarehouseRequest]{
		Service:    service.CatalogService,
		EntityName: "warehouse",
		MapCreate: func(req *dto.WarehouseRequest, now time.Time, userID *id.ID) (*warehouse.Warehouse, error) {
			return req.ToEntity(now, userID), nil
		},
		MapUpdate: func(req *dto.WarehouseRequest, existing *warehouse.Warehouse) error {
			req.ApplyTo(existing)
			return nil
		},
		Conditions: queryConditions("responsible_id"),
	})
}

// NewUserHandler creates the user CRUD handler. Passwords are hashed before
// the entity reaches the service.
func NewUserHandler(base *BaseHandler, service *user.Service) *CatalogHandler[*user.User, dto.UserRequest] {
	return NewCatalogHandler(base, CatalogHandlerConfig[*user.User, dto.UserRequest]{
		Service:    service.CatalogService,
		EntityName: "user",
		MapCreate: func(req *dto.UserRequest, now time.Time, _ *id.ID) (*user.User, error) {
			u := req.ToEntity(now)
			if err := service.SetPassword(u, req.Password); err != nil {
				return nil, err
			}
			return u, nil
		},
		MapUpdate: func(req *dto.UserRequest, existing *user.User) error {
			req.ApplyTo(existing)
			return service.SetPassword(existing, req.Password)
		},
		Conditions: queryConditions("role", "status"),
	})
}
