// Package reports provides the sales and stock analytics. Sales reports read
// finished outcome lines, order reports read orders, stock reports read the
// warehouse ledger. All aggregation happens here over fact rows returned by
// the Repository, so every report is computed the same way in tests and in
// production.
package reports

import (
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
)

// Granularity is the bucket size of time series reports.
type Granularity string

const (
	Day   Granularity = "day"
	Week  Granularity = "week" // ISO week, Monday start
	Month Granularity = "month"
)

// ParseGranularity falls back to Day for unknown values.
func ParseGranularity(s string) Granularity {
	switch g := Granularity(s); g {
	case Week, Month:
		return g
	}
	return Day
}

// Metric selects the value rows are ranked by.
type Metric string

const (
	MetricAmount Metric = "amount"
	MetricQty    Metric = "qty"
	MetricOrders Metric = "orders"
)

const (
	DefaultLimit = 20
	MaxLimit     = 500

	DefaultWindowDays    = 60
	DefaultThresholdDays = 14

	// DefaultCompareDays is the length of the compare range when dates are missing.
	DefaultCompareDays = 30

	// DefaultRangeDays bounds history reports: a missing date_from starts this
	// many days before date_to, and a missing date_to is today.
	DefaultRangeDays = 365
)

// Options control how report output is rendered.
type Options struct {
	// Location is the timezone documents are bucketed and date-filtered in
	Location *time.Location

	// MoneyScale is the number of fractional digits of money output
	MoneyScale int32
}

// DefaultOptions renders in UTC with two decimals.
func DefaultOptions() Options {
	return Options{Location: time.UTC, MoneyScale: types.DefaultMoneyScale}
}

// --- Filters ---

// Filter is the common filter of sales and order reports. Dates are calendar
// dates, inclusive, compared against the document creation date.
type Filter struct {
	DateFrom   *time.Time `json:"date_from,omitempty"`
	DateTo     *time.Time `json:"date_to,omitempty"`
	Warehouses []id.ID    `json:"warehouse,omitempty"`
	Clients    []id.ID    `json:"client,omitempty"`
	Products   []id.ID    `json:"product,omitempty"`
	Categories []id.ID    `json:"category,omitempty"`

	// Status of the source documents; sales reports default to finished
	Status string `json:"status,omitempty" validate:"omitempty,max=32"`
}

// SalesVolumeFilter is the filter of sales-volume.
type SalesVolumeFilter struct {
	Filter
	GroupBy Granularity `json:"group_by"`
}

// CompareFilter is the filter of sales-volume/compare.
type CompareFilter struct {
	Filter
	GroupBy Granularity `json:"group_by"`
	Mode    string      `json:"mode" validate:"omitempty,oneof=prev yoy"`
}

// RankingFilter is the filter of product and category rankings.
type RankingFilter struct {
	Filter
	Metric Metric `json:"metric" validate:"omitempty,oneof=amount qty"`
	Limit  int    `json:"limit"`
}

// DealersFilter is the filter of the dealer reports.
type DealersFilter struct {
	Filter
	Metric Metric `json:"metric" validate:"omitempty,oneof=amount qty orders"`
}

// ReturnsFilter is the filter of orders-and-returns.
type ReturnsFilter struct {
	Filter
	GroupBy        Granularity `json:"group_by"`
	IncludeReturns string      `json:"include_returns" validate:"omitempty,oneof=orders outcomes both"`
}

// AssortmentFilter is the filter of assortment-structure.
type AssortmentFilter struct {
	Filter
	GroupBy string `json:"group_by" validate:"omitempty,oneof=product category"`
}

// OrdersFilter is the filter of orders-count and average-order-amount.
// An empty status means every status.
type OrdersFilter struct {
	Filter
	GroupBy Granularity `json:"group_by"`
}

// StockFilter is the filter of the ledger reports.
type StockFilter struct {
	Warehouses []id.ID `json:"warehouse,omitempty"`
	Products   []id.ID `json:"product,omitempty"`
	Categories []id.ID `json:"category,omitempty"`
	GroupBy    string  `json:"group_by" validate:"omitempty,oneof=product category dealer"`
}

// ForecastFilter is the filter of forecast-shortages.
type ForecastFilter struct {
	Warehouses    []id.ID `json:"warehouse,omitempty"`
	Products      []id.ID `json:"product,omitempty"`
	Categories    []id.ID `json:"category,omitempty"`
	WindowDays    int     `json:"window_days" validate:"gte=0,lte=730"`
	ThresholdDays int     `json:"threshold_days" validate:"gte=0,lte=365"`
	OnlyShort     *bool   `json:"only_short,omitempty"`
}

// PlanFilter is the filter of plan-vs-actual and plan-achievement.
type PlanFilter struct {
	Filter
	Dimension string `json:"dimension" validate:"omitempty,oneof=none dealer warehouse"`
}

// DateRange is a pair of inclusive calendar dates rendered as ISO dates.
type DateRange struct {
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}
