package reports

import (
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
)

// Totals is the core aggregation over sales lines.
type Totals struct {
	TotalQty    int64       `json:"total_qty"`
	TotalAmount types.Money `json:"total_amount"`
	Orders      int         `json:"orders"`
}

// Bucket is one period of a time series. Period is the ISO date of its first day.
type Bucket struct {
	Period string `json:"period"`
	Totals
}

// SalesVolumeReport is the result of sales-volume.
type SalesVolumeReport struct {
	GroupBy Granularity `json:"group_by"`
	Filters Filter      `json:"filters"`
	Totals  Totals      `json:"totals"`
	Results []Bucket    `json:"results"`
}

// IntDelta compares two counters.
type IntDelta struct {
	Current  int64    `json:"current"`
	Previous int64    `json:"previous"`
	Delta    int64    `json:"delta"`
	Pct      *float64 `json:"pct"`
}

// MoneyDelta compares two amounts.
type MoneyDelta struct {
	Current  types.Money `json:"current"`
	Previous types.Money `json:"previous"`
	Delta    types.Money `json:"delta"`
	Pct      *float64    `json:"pct"`
}

// Diff compares two Totals.
type Diff struct {
	Qty    IntDelta   `json:"qty"`
	Amount MoneyDelta `json:"amount"`
	Orders IntDelta   `json:"orders"`
}

// PeriodDiff is Diff for one current bucket.
type PeriodDiff struct {
	Period         string `json:"period"`
	PreviousPeriod string `json:"previous_period"`
	Diff
}

// CompareReport is the result of sales-volume/compare.
type CompareReport struct {
	GroupBy  Granularity  `json:"group_by"`
	Mode     string       `json:"mode"`
	Current  DateRange    `json:"current"`
	Previous DateRange    `json:"previous"`
	Summary  Diff         `json:"summary"`
	ByPeriod []PeriodDiff `json:"by_period"`
}

// ProductRow is one product of a ranking.
type ProductRow struct {
	Rank         int    `json:"rank"`
	ProductID    id.ID  `json:"product_id"`
	ProductName  string `json:"product_name"`
	UnitType     string `json:"unit_type"`
	CategoryID   *id.ID `json:"category_id"`
	CategoryName string `json:"category_name"`
	Totals
}

// RankingReport is the result of top-products, least-popular-products and
// most-ordered-products.
type RankingReport struct {
	Metric  Metric       `json:"metric"`
	Limit   int          `json:"limit"`
	Count   int          `json:"count"`
	Results []ProductRow `json:"results"`
}

// DealerRow is one dealer of the dealer reports.
type DealerRow struct {
	ClientID   *id.ID       `json:"client_id"`
	DealerName string       `json:"dealer_name"`
	AvgCheck   *types.Money `json:"avg_check"`
	SharePct   *float64     `json:"share_pct,omitempty"`
	Index      *float64     `json:"index,omitempty"`
	Totals
}

// DealersReport is the result of dealers-sales and dealers-compare.
type DealersReport struct {
	Metric  Metric      `json:"metric"`
	Totals  Totals      `json:"totals"`
	Results []DealerRow `json:"results"`
}

// AvgCheckSummary is the overall average check.
type AvgCheckSummary struct {
	Orders      int          `json:"orders"`
	TotalAmount types.Money  `json:"total_amount"`
	AvgCheck    *types.Money `json:"avg_check"`
}

// AvgCheckReport is the result of dealer-avg-check.
type AvgCheckReport struct {
	Summary AvgCheckSummary `json:"summary"`
	Results []DealerRow     `json:"results"`
}

// ReturnsBucket is one period of orders-and-returns.
type ReturnsBucket struct {
	Period          string   `json:"period"`
	OrdersTotal     int      `json:"orders_total"`
	OrdersCancelled int      `json:"orders_cancelled"`
	ReturnsTotal    int      `json:"returns_total"`
	CancelRatePct   *float64 `json:"cancel_rate_pct"`
	ReturnsSharePct *float64 `json:"returns_share_pct"`
}

// ReturnsReport is the result of orders-and-returns.
type ReturnsReport struct {
	GroupBy        Granularity     `json:"group_by"`
	IncludeReturns string          `json:"include_returns"`
	Totals         ReturnsBucket   `json:"totals"`
	Results        []ReturnsBucket `json:"results"`
}

// ShareRow is a group with its share of the grand total.
type ShareRow struct {
	ID       *id.ID   `json:"id"`
	Name     string   `json:"name"`
	SharePct *float64 `json:"share_pct"`
	Totals
}

// ShareReport is the result of sales-geography and top-categories.
type ShareReport struct {
	Metric  Metric     `json:"metric"`
	Limit   int        `json:"limit,omitempty"`
	Totals  Totals     `json:"totals"`
	Results []ShareRow `json:"results"`
}

// ABCClass is the Pareto class of an assortment row.
type ABCClass string

const (
	ClassA ABCClass = "A"
	ClassB ABCClass = "B"
	ClassC ABCClass = "C"
)

// AssortmentRow is one product or category of assortment-structure.
type AssortmentRow struct {
	ID            *id.ID   `json:"id"`
	Name          string   `json:"name"`
	SharePct      *float64 `json:"share_pct"`
	CumulativePct *float64 `json:"cumulative_pct"`
	ABC           ABCClass `json:"abc"`
	Totals
}

// AssortmentReport is the result of assortment-structure.
type AssortmentReport struct {
	GroupBy string          `json:"group_by"`
	Totals  Totals          `json:"totals"`
	Results []AssortmentRow `json:"results"`
}

// StockGroup is one group of central-stock.
type StockGroup struct {
	ID       *id.ID       `json:"id"`
	Name     string       `json:"name"`
	Qty      int64        `json:"qty"`
	Value    types.Money  `json:"value"`
	AvgPrice *types.Money `json:"avg_price"`
}

// CentralStockReport is the result of central-stock.
type CentralStockReport struct {
	GroupBy string       `json:"group_by"`
	Totals  StockGroup   `json:"totals"`
	Results []StockGroup `json:"results"`
}

// WarehouseDealerRow is one (warehouse, responsible dealer) pair.
type WarehouseDealerRow struct {
	WarehouseID   id.ID       `json:"warehouse_id"`
	WarehouseName string      `json:"warehouse_name"`
	DealerID      *id.ID      `json:"dealer_id"`
	DealerName    string      `json:"dealer_name"`
	Qty           int64       `json:"qty"`
	Value         types.Money `json:"value"`
	Positions     int         `json:"positions"`
}

// WarehouseDealerReport is the result of stocks-by-warehouse-dealer.
type WarehouseDealerReport struct {
	Results []WarehouseDealerRow `json:"results"`
}

// ShortageRow is one (warehouse, product) of forecast-shortages.
type ShortageRow struct {
	WarehouseID    id.ID   `json:"warehouse_id"`
	WarehouseName  string  `json:"warehouse_name"`
	ProductID      id.ID   `json:"product_id"`
	ProductName    string  `json:"product_name"`
	Stock          int64   `json:"stock"`
	Incoming       int64   `json:"incoming"`
	Used           int64   `json:"used"`
	DailyRate      float64 `json:"daily_rate"`
	DaysOfCover    float64 `json:"days_of_cover"`
	IsShort        bool    `json:"is_short"`
	RecommendedQty int64   `json:"recommended_qty"`
	DepletionDate  string  `json:"depletion_date"`
}

// ForecastReport is the result of forecast-shortages.
type ForecastReport struct {
	Today         string        `json:"today"`
	WindowDays    int           `json:"window_days"`
	ThresholdDays int           `json:"threshold_days"`
	OnlyShort     bool          `json:"only_short"`
	Results       []ShortageRow `json:"results"`
}

// PlanRow compares plan and actual for one key. Plan, Delta and
// AchievementPct are nil for the warehouse dimension.
type PlanRow struct {
	Year           int          `json:"year,omitempty"`
	Month          int          `json:"month,omitempty"`
	Key            *id.ID       `json:"key"`
	Name           string       `json:"name"`
	Plan           *types.Money `json:"plan"`
	Actual         types.Money  `json:"actual"`
	Delta          *types.Money `json:"delta"`
	AchievementPct *float64     `json:"achievement_pct"`
}

// PlanReport is the result of plan-vs-actual and plan-achievement.
type PlanReport struct {
	Dimension string    `json:"dimension"`
	Range     DateRange `json:"range"`
	Totals    PlanRow   `json:"totals"`
	Results   []PlanRow `json:"results"`
}

// OrderBucket is one period of orders-count and average-order-amount.
type OrderBucket struct {
	Period string       `json:"period"`
	Orders int          `json:"orders"`
	Amount types.Money  `json:"amount"`
	Avg    *types.Money `json:"avg"`
}

// OrdersReport is the result of orders-count and average-order-amount.
type OrdersReport struct {
	GroupBy Granularity   `json:"group_by"`
	Totals  OrderBucket   `json:"totals"`
	Results []OrderBucket `json:"results"`
}
