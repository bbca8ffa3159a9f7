package documents

import (
	"context"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/product"
)

// Checker resolves a reference to a catalog entity.
type Checker interface {
	RequireExists(ctx context.Context, entityID id.ID) error
}

// ProductLoader loads products referenced by lines.
type ProductLoader interface {
	GetMany(ctx context.Context, ids []id.ID) (map[id.ID]*product.Product, error)
}

// References checks catalog references of documents.
type References struct {
	Users      Checker
	Warehouses Checker
	Products   ProductLoader
}

// RequireUser fails with NotFound when userID is set but unknown.
func (r References) RequireUser(ctx context.Context, field string, userID *id.ID) error {
	if userID == nil || r.Users == nil {
		return nil
	}
	if err := r.Users.RequireExists(ctx, *userID); err != nil {
		return tagField(err, field)
	}
	return nil
}

// RequireWarehouse fails with NotFound when warehouseID is set but unknown.
func (r References) RequireWarehouse(ctx context.Context, field string, warehouseID *id.ID) error {
	if warehouseID == nil || r.Warehouses == nil {
		return nil
	}
	if err := r.Warehouses.RequireExists(ctx, *warehouseID); err != nil {
		return tagField(err, field)
	}
	return nil
}

// ResolveLines checks that every product exists. When fillPrice is set, lines
// without a price take the catalog price; otherwise prices are cleared.
func ResolveLines[S ~string](ctx context.Context, r References, b *Base[S], fillPrice bool) error {
	if !fillPrice {
		for i := range b.Lines {
			b.Lines[i].Price = types.Zero()
		}
	}
	if len(b.Lines) > 0 && r.Products != nil {
		products, err := r.Products.GetMany(ctx, b.ProductIDs())
		if err != nil {
			return err
		}
		if fillPrice {
			for i := range b.Lines {
				if b.Lines[i].Price.IsZero() {
					b.Lines[i].Price = products[b.Lines[i].ProductID].Price
				}
			}
		}
	}
	b.Recalculate()
	return nil
}

func tagField(err error, field string) error {
	if appErr, ok := apperror.AsAppError(err); ok {
		return appErr.WithDetail("field", field)
	}
	return err
}
