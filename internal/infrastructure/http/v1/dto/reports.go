package dto

import (
	"net/url"
	"strings"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/domain/reports"
)

// ReportQuery reads report filters from the query string. Malformed optional
// values (ids, dates, numbers) are dropped instead of failing the request;
// enumerated keys are passed through and validated by the report service.
type ReportQuery struct {
	values url.Values
}

// NewReportQuery wraps query values.
func NewReportQuery(values url.Values) ReportQuery {
	return ReportQuery{values: values}
}

func (q ReportQuery) str(key string) string {
	return strings.TrimSpace(q.values.Get(key))
}

func (q ReportQuery) ids(key string) []id.ID {
	return id.ParseList(q.values[key])
}

// Filter reads the common sales filter.
func (q ReportQuery) Filter() reports.Filter {
	return reports.Filter{
		DateFrom:   ParseDate(q.str("date_from")),
		DateTo:     ParseDate(q.str("date_to")),
		Warehouses: q.ids("warehouse"),
		Clients:    q.ids("client"),
		Products:   q.ids("product"),
		Categories: q.ids("category"),
		Status:     q.str("status"),
	}
}

// SalesVolume reads the sales-volume filter.
func (q ReportQuery) SalesVolume() reports.SalesVolumeFilter {
	return reports.SalesVolumeFilter{Filter: q.Filter(), GroupBy: reports.ParseGranularity(q.str("group_by"))}
}

// Compare reads the sales-volume/compare filter.
func (q ReportQuery) Compare() reports.CompareFilter {
	return reports.CompareFilter{
		Filter:  q.Filter(),
		GroupBy: reports.ParseGranularity(q.str("group_by")),
		Mode:    q.str("mode"),
	}
}

// Ranking reads the filter of product and category rankings.
func (q ReportQuery) Ranking() reports.RankingFilter {
	return reports.RankingFilter{
		Filter: q.Filter(),
		Metric: reports.Metric(q.str("metric")),
		Limit:  ParseInt(q.str("limit"), 0),
	}
}

// Dealers reads the filter of the dealer reports.
func (q ReportQuery) Dealers() reports.DealersFilter {
	return reports.DealersFilter{Filter: q.Filter(), Metric: reports.Metric(q.str("metric"))}
}

// Returns reads the orders-and-returns filter.
func (q ReportQuery) Returns() reports.ReturnsFilter {
	return reports.ReturnsFilter{
		Filter:         q.Filter(),
		GroupBy:        reports.ParseGranularity(q.str("group_by")),
		IncludeReturns: q.str("include_returns"),
	}
}

// Assortment reads the assortment-structure filter.
func (q ReportQuery) Assortment() reports.AssortmentFilter {
	return reports.AssortmentFilter{Filter: q.Filter(), GroupBy: q.str("group_by")}
}

// Orders reads the filter of orders-count and average-order-amount.
func (q ReportQuery) Orders() reports.OrdersFilter {
	return reports.OrdersFilter{Filter: q.Filter(), GroupBy: reports.ParseGranularity(q.str("group_by"))}
}

// Stock reads the filter of the ledger reports.
func (q ReportQuery) Stock() reports.StockFilter {
	return reports.StockFilter{
		Warehouses: q.ids("warehouse"),
		Products:   q.ids("product"),
		Categories: q.ids("category"),
		GroupBy:    q.str("group_by"),
	}
}

// Forecast reads the forecast-shortages filter. Non-positive windows fall
// back to the defaults.
func (q ReportQuery) Forecast() reports.ForecastFilter {
	f := reports.ForecastFilter{
		Warehouses:    q.ids("warehouse"),
		Products:      q.ids("product"),
		Categories:    q.ids("category"),
		WindowDays:    ParseInt(q.str("window_days"), 0),
		ThresholdDays: ParseInt(q.str("threshold_days"), 0),
		OnlyShort:     ParseBool(q.str("only_short")),
	}
	if f.WindowDays < 0 {
		f.WindowDays = 0
	}
	if f.ThresholdDays < 0 {
		f.ThresholdDays = 0
	}
	return f
}

// Plan reads the filter of the plan reports.
func (q ReportQuery) Plan() reports.PlanFilter {
	return reports.PlanFilter{Filter: q.Filter(), Dimension: q.str("dimension")}
}
