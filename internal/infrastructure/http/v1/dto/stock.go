package dto

import (
	"net/url"
	"strings"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/domain/registers/stock"
)

// StockListFilter reads ledger list filters from the query string. Malformed
// ids and dates are ignored.
func StockListFilter(values url.Values) stock.ListFilter {
	f := stock.ListFilter{
		ProductID:   id.ParseOptional(values.Get("product")),
		ProductName: strings.TrimSpace(values.Get("product_name")),
		WarehouseID: id.ParseOptional(values.Get("warehouse")),
		CreatedOn:   ParseDate(values.Get("created")),
		UserID:      id.ParseOptional(values.Get("user")),
		CategoryID:  id.ParseOptional(values.Get("category")),
		Limit:       ParseInt(values.Get("limit"), 0),
		Offset:      ParseInt(values.Get("offset"), 0),
	}
	if s := strings.TrimSpace(values.Get("status")); s != "" {
		f.Status = &s
	}
	if b := ParseBool(values.Get("non_zero")); b != nil {
		f.OnlyNonZero = *b
	}
	return f
}
