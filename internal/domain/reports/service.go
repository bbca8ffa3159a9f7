package reports

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/clock"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/income"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/order"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/outcome"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/plan"
	"github.com/amriddinov-m/panasonic-api/pkg/logger"
)

// Report names, as served under /reports.
const (
	ReportSalesVolume        = "sales-volume"
	ReportSalesCompare       = "sales-volume/compare"
	ReportTopProducts        = "top-products"
	ReportLeastPopular       = "least-popular-products"
	ReportDealersSales       = "dealers-sales"
	ReportDealersCompare     = "dealers-compare"
	ReportDealerAvgCheck     = "dealer-avg-check"
	ReportOrdersAndReturns   = "orders-and-returns"
	ReportSalesGeography     = "sales-geography"
	ReportTopCategories      = "top-categories"
	ReportAssortment         = "assortment-structure"
	ReportCentralStock       = "central-stock"
	ReportStocksByWarehouse  = "stocks-by-warehouse-dealer"
	ReportForecastShortages  = "forecast-shortages"
	ReportPlanVsActual       = "plan-vs-actual"
	ReportPlanAchievement    = "plan-achievement"
	ReportOrdersCount        = "orders-count"
	ReportAverageOrderAmount = "average-order-amount"
	ReportMostOrdered        = "most-ordered-products"
)

// Cache stores rendered reports. Implementations decide key versioning and
// expiry; a miss is (false, nil).
//
// Get returns the cache version the lookup ran under. Set stores a result
// under that version, so a build that overlaps an invalidation is orphaned
// instead of being served as fresh.
type Cache interface {
	Get(ctx context.Context, report, key string, dst any) (version int64, hit bool, err error)
	Set(ctx context.Context, version int64, report, key string, value any) error
}

// Service builds reports.
type Service struct {
	repo     Repository
	cache    Cache
	clock    clock.Clock
	opts     Options
	validate *validator.Validate
	group    singleflight.Group
}

// NewService creates a reports service.
func NewService(repo Repository, clk clock.Clock, opts Options) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	// line amounts carry two decimals; coarser rounding breaks bucket sums
	if opts.MoneyScale < types.DefaultMoneyScale {
		opts.MoneyScale = types.DefaultMoneyScale
	}
	return &Service{
		repo:     repo,
		clock:    clk,
		opts:     opts,
		validate: validator.New(),
	}
}

// WithCache enables result caching.
func (s *Service) WithCache(c Cache) *Service {
	s.cache = c
	return s
}

// Options returns the rendering options.
func (s *Service) Options() Options {
	return s.opts
}

// run validates the filter, then serves the report from cache or builds it.
// Identical concurrent builds are coalesced.
func run[T any](ctx context.Context, s *Service, name string, filter any, build func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if err := s.validate.Struct(filter); err != nil {
		return zero, validationError(err)
	}

	key, err := cacheKey(filter)
	if err != nil {
		return zero, fmt.Errorf("report %s key: %w", name, err)
	}

	var version int64
	cacheable := false
	if s.cache != nil {
		var cached T
		ver, hit, err := s.cache.Get(ctx, name, key, &cached)
		switch {
		case err != nil:
			logger.Warn(ctx, "report cache read failed", "report", name, "error", err)
		case hit:
			return cached, nil
		default:
			version, cacheable = ver, true
		}
	}

	// callers under different cache versions never share a build
	flight := fmt.Sprintf("%s|%s|%d", name, key, version)
	v, err, _ := s.group.Do(flight, func() (any, error) {
		return build(context.WithoutCancel(ctx))
	})
	if err != nil {
		return zero, err
	}
	res := v.(T)

	if cacheable {
		if err := s.cache.Set(ctx, version, name, key, res); err != nil {
			logger.Warn(ctx, "report cache write failed", "report", name, "error", err)
		}
	}
	return res, nil
}

func cacheKey(filter any) (string, error) {
	raw, err := json.Marshal(filter)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:16]), nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewValidation(err.Error())
	}
	appErr := apperror.NewValidation("invalid report filter")
	for _, fe := range verrs {
		appErr = appErr.WithDetail(fe.Field(), fe.Tag())
	}
	return appErr
}

func (s *Service) today() time.Time {
	return clock.Today(s.clock, s.opts.Location)
}

// period resolves the date range of a history report. Missing ends fall
// back to today and DefaultRangeDays before the end, so no report reads the
// whole document history.
func (s *Service) period(f Filter) Range {
	to := s.today()
	if f.DateTo != nil {
		to = *f.DateTo
	}
	from := to.AddDate(0, 0, -DefaultRangeDays+1)
	if f.DateFrom != nil {
		from = *f.DateFrom
	}
	return dateRange(&from, &to, s.opts.Location)
}

func (s *Service) lineQuery(f Filter, defaultStatus string) LineQuery {
	q := LineQuery{
		Range:      s.period(f),
		Warehouses: f.Warehouses,
		Clients:    f.Clients,
		Products:   f.Products,
		Categories: f.Categories,
	}
	switch {
	case f.Status != "":
		q.Statuses = []string{f.Status}
	case defaultStatus != "":
		q.Statuses = []string{defaultStatus}
	}
	return q
}

func (s *Service) salesQuery(f Filter) LineQuery {
	return s.lineQuery(f, string(outcome.StatusFinished))
}

// SalesVolume buckets finished outcome lines by period.
func (s *Service) SalesVolume(ctx context.Context, f SalesVolumeFilter) (SalesVolumeReport, error) {
	f.GroupBy = ParseGranularity(string(f.GroupBy))
	return run(ctx, s, ReportSalesVolume, f, func(ctx context.Context) (SalesVolumeReport, error) {
		lines, err := s.repo.OutcomeLines(ctx, s.salesQuery(f.Filter))
		if err != nil {
			return SalesVolumeReport{}, fmt.Errorf("sales volume: %w", err)
		}
		buckets, totals := salesVolume(lines, f.GroupBy, s.opts)
		return SalesVolumeReport{GroupBy: f.GroupBy, Filters: f.Filter, Totals: totals, Results: buckets}, nil
	})
}

// SalesCompare compares the range with the previous one or the same range a year earlier.
func (s *Service) SalesCompare(ctx context.Context, f CompareFilter) (CompareReport, error) {
	f.GroupBy = ParseGranularity(string(f.GroupBy))
	if f.Mode == "" {
		f.Mode = "prev"
	}
	today := s.today()
	if f.DateTo == nil {
		f.DateTo = &today
	}
	if f.DateFrom == nil {
		from := today.AddDate(0, 0, -DefaultCompareDays)
		f.DateFrom = &from
	}

	return run(ctx, s, ReportSalesCompare, f, func(ctx context.Context) (CompareReport, error) {
		loc := s.opts.Location
		curFrom, curTo := calendarDate(*f.DateFrom, loc), calendarDate(*f.DateTo, loc)
		if curTo.Before(curFrom) {
			return CompareReport{}, apperror.NewValidation("date_from must not be after date_to").
				WithDetail("field", "date_from")
		}
		w := previousWindow(curFrom, curTo, f.Mode)

		q := s.salesQuery(f.Filter)
		cur, err := s.repo.OutcomeLines(ctx, q)
		if err != nil {
			return CompareReport{}, fmt.Errorf("sales compare current: %w", err)
		}
		q.Range = dateRange(&w.from, &w.to, loc)
		prev, err := s.repo.OutcomeLines(ctx, q)
		if err != nil {
			return CompareReport{}, fmt.Errorf("sales compare previous: %w", err)
		}

		summary, byPeriod := compareSeries(cur, prev, f.GroupBy, w, s.opts)
		return CompareReport{
			GroupBy:  f.GroupBy,
			Mode:     f.Mode,
			Current:  DateRange{DateFrom: curFrom.Format(isoDate), DateTo: curTo.Format(isoDate)},
			Previous: DateRange{DateFrom: w.from.Format(isoDate), DateTo: w.to.Format(isoDate)},
			Summary:  summary,
			ByPeriod: byPeriod,
		}, nil
	})
}

func normalizeRanking(f *RankingFilter, defaultMetric Metric) {
	if f.Metric == "" {
		f.Metric = defaultMetric
	}
	f.Limit = clampLimit(f.Limit)
}

// TopProducts ranks products by metric, best first.
func (s *Service) TopProducts(ctx context.Context, f RankingFilter) (RankingReport, error) {
	return s.productRanking(ctx, ReportTopProducts, f, false)
}

// LeastPopularProducts ranks products by metric, worst first.
func (s *Service) LeastPopularProducts(ctx context.Context, f RankingFilter) (RankingReport, error) {
	return s.productRanking(ctx, ReportLeastPopular, f, true)
}

func (s *Service) productRanking(ctx context.Context, name string, f RankingFilter, ascending bool) (RankingReport, error) {
	normalizeRanking(&f, MetricAmount)
	return run(ctx, s, name, f, func(ctx context.Context) (RankingReport, error) {
		lines, err := s.repo.OutcomeLines(ctx, s.salesQuery(f.Filter))
		if err != nil {
			return RankingReport{}, fmt.Errorf("%s: %w", name, err)
		}
		rows := rankProducts(lines, f.Metric, f.Limit, ascending, s.opts.MoneyScale)
		return RankingReport{Metric: f.Metric, Limit: f.Limit, Count: len(rows), Results: rows}, nil
	})
}

// MostOrderedProducts ranks products by ordered quantity or amount.
// Cancelled orders are left out unless a status is requested.
func (s *Service) MostOrderedProducts(ctx context.Context, f RankingFilter) (RankingReport, error) {
	normalizeRanking(&f, MetricQty)
	return run(ctx, s, ReportMostOrdered, f, func(ctx context.Context) (RankingReport, error) {
		q := s.lineQuery(f.Filter, "")
		if f.Status == "" {
			q.ExcludeStatuses = []string{string(order.StatusCancelled)}
		}
		lines, err := s.repo.OrderLines(ctx, q)
		if err != nil {
			return RankingReport{}, fmt.Errorf("most ordered products: %w", err)
		}
		rows := rankProducts(lines, f.Metric, f.Limit, false, s.opts.MoneyScale)
		return RankingReport{Metric: f.Metric, Limit: f.Limit, Count: len(rows), Results: rows}, nil
	})
}

func (s *Service) dealers(ctx context.Context, name string, f DealersFilter, shares bool) (DealersReport, error) {
	if f.Metric == "" {
		f.Metric = MetricAmount
	}
	return run(ctx, s, name, f, func(ctx context.Context) (DealersReport, error) {
		lines, err := s.repo.OutcomeLines(ctx, s.salesQuery(f.Filter))
		if err != nil {
			return DealersReport{}, fmt.Errorf("%s: %w", name, err)
		}
		return DealersReport{
			Metric:  f.Metric,
			Totals:  total(lines).totals(s.opts.MoneyScale),
			Results: dealerRows(lines, f.Metric, shares, s.opts.MoneyScale),
		}, nil
	})
}

// DealersSales groups sales by dealer.
func (s *Service) DealersSales(ctx context.Context, f DealersFilter) (DealersReport, error) {
	return s.dealers(ctx, ReportDealersSales, f, false)
}

// DealersCompare groups sales by dealer with share and index against the leader.
func (s *Service) DealersCompare(ctx context.Context, f DealersFilter) (DealersReport, error) {
	return s.dealers(ctx, ReportDealersCompare, f, true)
}

// DealerAvgCheck reports orders, amount and average check per dealer.
func (s *Service) DealerAvgCheck(ctx context.Context, f DealersFilter) (AvgCheckReport, error) {
	if f.Metric == "" {
		f.Metric = MetricAmount
	}
	return run(ctx, s, ReportDealerAvgCheck, f, func(ctx context.Context) (AvgCheckReport, error) {
		lines, err := s.repo.OutcomeLines(ctx, s.salesQuery(f.Filter))
		if err != nil {
			return AvgCheckReport{}, fmt.Errorf("dealer avg check: %w", err)
		}
		all := total(lines)
		return AvgCheckReport{
			Summary: AvgCheckSummary{
				Orders:      len(all.docs),
				TotalAmount: all.totals(s.opts.MoneyScale).TotalAmount,
				AvgCheck:    avgMoney(all.amount, len(all.docs), s.opts.MoneyScale),
			},
			Results: dealerRows(lines, f.Metric, false, s.opts.MoneyScale),
		}, nil
	})
}

// OrdersAndReturns reports cancellations and returns per period.
func (s *Service) OrdersAndReturns(ctx context.Context, f ReturnsFilter) (ReturnsReport, error) {
	f.GroupBy = ParseGranularity(string(f.GroupBy))
	if f.IncludeReturns == "" {
		f.IncludeReturns = "both"
	}
	return run(ctx, s, ReportOrdersAndReturns, f, func(ctx context.Context) (ReturnsReport, error) {
		rng := s.period(f.Filter)
		orders, err := s.repo.Orders(ctx, HeaderQuery{Range: rng, Clients: f.Clients})
		if err != nil {
			return ReturnsReport{}, fmt.Errorf("orders and returns: %w", err)
		}
		var returned []Header
		if f.IncludeReturns != "orders" {
			returned, err = s.repo.Outcomes(ctx, HeaderQuery{
				Range:    rng,
				Clients:  f.Clients,
				Statuses: []string{string(outcome.StatusCancelled)},
			})
			if err != nil {
				return ReturnsReport{}, fmt.Errorf("orders and returns: %w", err)
			}
		}
		buckets, totals := returnsSeries(orders, returned, string(order.StatusCancelled), f.IncludeReturns, f.GroupBy, s.opts.Location)
		return ReturnsReport{GroupBy: f.GroupBy, IncludeReturns: f.IncludeReturns, Totals: totals, Results: buckets}, nil
	})
}

// SalesGeography groups sales by warehouse with each warehouse's share of the amount.
func (s *Service) SalesGeography(ctx context.Context, f Filter) (ShareReport, error) {
	return run(ctx, s, ReportSalesGeography, f, func(ctx context.Context) (ShareReport, error) {
		lines, err := s.repo.OutcomeLines(ctx, s.salesQuery(f))
		if err != nil {
			return ShareReport{}, fmt.Errorf("sales geography: %w", err)
		}
		return ShareReport{
			Metric:  MetricAmount,
			Totals:  total(lines).totals(s.opts.MoneyScale),
			Results: shareRows(lines, byWarehouse, MetricAmount, 0, s.opts.MoneyScale),
		}, nil
	})
}

// TopCategories ranks categories by metric.
func (s *Service) TopCategories(ctx context.Context, f RankingFilter) (ShareReport, error) {
	normalizeRanking(&f, MetricAmount)
	return run(ctx, s, ReportTopCategories, f, func(ctx context.Context) (ShareReport, error) {
		lines, err := s.repo.OutcomeLines(ctx, s.salesQuery(f.Filter))
		if err != nil {
			return ShareReport{}, fmt.Errorf("top categories: %w", err)
		}
		return ShareReport{
			Metric:  f.Metric,
			Limit:   f.Limit,
			Totals:  total(lines).totals(s.opts.MoneyScale),
			Results: shareRows(lines, byCategory, f.Metric, f.Limit, s.opts.MoneyScale),
		}, nil
	})
}

// AssortmentStructure classifies products or categories into ABC classes by amount.
func (s *Service) AssortmentStructure(ctx context.Context, f AssortmentFilter) (AssortmentReport, error) {
	if f.GroupBy == "" {
		f.GroupBy = "product"
	}
	return run(ctx, s, ReportAssortment, f, func(ctx context.Context) (AssortmentReport, error) {
		lines, err := s.repo.OutcomeLines(ctx, s.salesQuery(f.Filter))
		if err != nil {
			return AssortmentReport{}, fmt.Errorf("assortment structure: %w", err)
		}
		return AssortmentReport{
			GroupBy: f.GroupBy,
			Totals:  total(lines).totals(s.opts.MoneyScale),
			Results: assortment(lines, f.GroupBy, s.opts.MoneyScale),
		}, nil
	})
}

func (s *Service) requireWarehouses(ctx context.Context, f StockFilter) error {
	for _, wh := range f.Warehouses {
		ok, err := s.repo.WarehouseExists(ctx, wh)
		if err != nil {
			return fmt.Errorf("check warehouse: %w", err)
		}
		if !ok {
			return apperror.NewNotFound("warehouse", wh.String()).WithDetail("field", "warehouse")
		}
	}
	return nil
}

// CentralStock groups the ledger by product, category or responsible dealer.
func (s *Service) CentralStock(ctx context.Context, f StockFilter) (CentralStockReport, error) {
	if f.GroupBy == "" {
		f.GroupBy = "product"
	}
	return run(ctx, s, ReportCentralStock, f, func(ctx context.Context) (CentralStockReport, error) {
		if err := s.requireWarehouses(ctx, f); err != nil {
			return CentralStockReport{}, err
		}
		rows, err := s.repo.StockRows(ctx, StockQuery{Warehouses: f.Warehouses, Products: f.Products, Categories: f.Categories})
		if err != nil {
			return CentralStockReport{}, fmt.Errorf("central stock: %w", err)
		}
		groups, totals := centralStock(rows, f.GroupBy, s.opts.MoneyScale)
		return CentralStockReport{GroupBy: f.GroupBy, Totals: totals, Results: groups}, nil
	})
}

// StocksByWarehouseDealer groups the ledger by warehouse and responsible dealer.
func (s *Service) StocksByWarehouseDealer(ctx context.Context, f StockFilter) (WarehouseDealerReport, error) {
	f.GroupBy = ""
	return run(ctx, s, ReportStocksByWarehouse, f, func(ctx context.Context) (WarehouseDealerReport, error) {
		rows, err := s.repo.StockRows(ctx, StockQuery{Warehouses: f.Warehouses, Products: f.Products, Categories: f.Categories})
		if err != nil {
			return WarehouseDealerReport{}, fmt.Errorf("stocks by warehouse: %w", err)
		}
		return WarehouseDealerReport{Results: warehouseDealer(rows, s.opts.MoneyScale)}, nil
	})
}

// ForecastShortages projects days of cover from recent usage and flags
// products that run out before the threshold.
func (s *Service) ForecastShortages(ctx context.Context, f ForecastFilter) (ForecastReport, error) {
	if f.WindowDays == 0 {
		f.WindowDays = DefaultWindowDays
	}
	if f.ThresholdDays == 0 {
		f.ThresholdDays = DefaultThresholdDays
	}
	onlyShort := true
	if f.OnlyShort != nil {
		onlyShort = *f.OnlyShort
	}
	f.OnlyShort = &onlyShort

	return run(ctx, s, ReportForecastShortages, f, func(ctx context.Context) (ForecastReport, error) {
		today := s.today()
		from := today.AddDate(0, 0, -f.WindowDays+1)
		to := today.AddDate(0, 0, 1)
		scope := LineQuery{Warehouses: f.Warehouses, Products: f.Products, Categories: f.Categories}

		stock, err := s.repo.StockRows(ctx, StockQuery{Warehouses: f.Warehouses, Products: f.Products, Categories: f.Categories})
		if err != nil {
			return ForecastReport{}, fmt.Errorf("forecast stock: %w", err)
		}
		usedQ := scope
		usedQ.Range = Range{From: &from, To: &to}
		usedQ.Statuses = []string{string(outcome.StatusFinished)}
		used, err := s.repo.OutcomeLines(ctx, usedQ)
		if err != nil {
			return ForecastReport{}, fmt.Errorf("forecast usage: %w", err)
		}
		incomingQ := scope
		incomingQ.Statuses = []string{string(income.StatusPending), string(income.StatusActive)}
		incoming, err := s.repo.IncomeLines(ctx, incomingQ)
		if err != nil {
			return ForecastReport{}, fmt.Errorf("forecast incoming: %w", err)
		}

		return ForecastReport{
			Today:         today.Format(isoDate),
			WindowDays:    f.WindowDays,
			ThresholdDays: f.ThresholdDays,
			OnlyShort:     onlyShort,
			Results: forecast(forecastInput{
				stock:     stock,
				used:      used,
				incoming:  incoming,
				window:    f.WindowDays,
				threshold: f.ThresholdDays,
				today:     today,
				onlyShort: onlyShort,
			}),
		}, nil
	})
}

// planScope fills default dates: the current year up to today.
func (s *Service) planScope(f *PlanFilter) {
	if f.Dimension == "" {
		f.Dimension = "none"
	}
	today := s.today()
	if f.DateTo == nil {
		f.DateTo = &today
	}
	if f.DateFrom == nil {
		from := time.Date(f.DateTo.Year(), time.January, 1, 0, 0, 0, 0, s.opts.Location)
		f.DateFrom = &from
	}
}

func (s *Service) planReport(ctx context.Context, name string, f PlanFilter, perMonth bool) (PlanReport, error) {
	s.planScope(&f)
	return run(ctx, s, name, f, func(ctx context.Context) (PlanReport, error) {
		loc := s.opts.Location
		from, to := calendarDate(*f.DateFrom, loc), calendarDate(*f.DateTo, loc)
		if to.Before(from) {
			return PlanReport{}, apperror.NewValidation("date_from must not be after date_to").
				WithDetail("field", "date_from")
		}

		var items []PlanItem
		if f.Dimension != "warehouse" {
			yearStart := time.Date(from.Year(), time.January, 1, 0, 0, 0, 0, loc)
			yearEnd := time.Date(to.Year()+1, time.January, 1, 0, 0, 0, 0, loc)
			var err error
			items, err = s.repo.PlanItems(ctx, PlanQuery{
				Created:  Range{From: &yearStart, To: &yearEnd},
				Statuses: []string{string(plan.StatusConfirmed)},
				Dealers:  f.Clients,
			})
			if err != nil {
				return PlanReport{}, fmt.Errorf("%s plan: %w", name, err)
			}
		}

		q := s.salesQuery(f.Filter)
		monthStart := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, loc)
		monthEnd := time.Date(to.Year(), to.Month()+1, 1, 0, 0, 0, 0, loc)
		q.Range = Range{From: &monthStart, To: &monthEnd}
		actual, err := s.repo.OutcomeLines(ctx, q)
		if err != nil {
			return PlanReport{}, fmt.Errorf("%s actual: %w", name, err)
		}

		rows, totals := planRows(planInput{
			items:     items,
			actual:    actual,
			fromYM:    yearMonth(from, loc),
			toYM:      yearMonth(to, loc),
			dimension: f.Dimension,
			perMonth:  perMonth,
			loc:       loc,
			scale:     s.opts.MoneyScale,
		})
		return PlanReport{
			Dimension: f.Dimension,
			Range:     DateRange{DateFrom: from.Format(isoDate), DateTo: to.Format(isoDate)},
			Totals:    totals,
			Results:   rows,
		}, nil
	})
}

// PlanVsActual compares confirmed plans with finished sales per month.
func (s *Service) PlanVsActual(ctx context.Context, f PlanFilter) (PlanReport, error) {
	return s.planReport(ctx, ReportPlanVsActual, f, true)
}

// PlanAchievement compares plans with sales over the whole range.
func (s *Service) PlanAchievement(ctx context.Context, f PlanFilter) (PlanReport, error) {
	return s.planReport(ctx, ReportPlanAchievement, f, false)
}

func (s *Service) orders(ctx context.Context, name string, f OrdersFilter) (OrdersReport, error) {
	f.GroupBy = ParseGranularity(string(f.GroupBy))
	return run(ctx, s, name, f, func(ctx context.Context) (OrdersReport, error) {
		q := HeaderQuery{Range: s.period(f.Filter), Clients: f.Clients}
		if f.Status != "" {
			q.Statuses = []string{f.Status}
		}
		orders, err := s.repo.Orders(ctx, q)
		if err != nil {
			return OrdersReport{}, fmt.Errorf("%s: %w", name, err)
		}
		buckets, totals := orderSeries(orders, f.GroupBy, s.opts)
		return OrdersReport{GroupBy: f.GroupBy, Totals: totals, Results: buckets}, nil
	})
}

// OrdersCount counts orders per period.
func (s *Service) OrdersCount(ctx context.Context, f OrdersFilter) (OrdersReport, error) {
	return s.orders(ctx, ReportOrdersCount, f)
}

// AverageOrderAmount reports order amount and average per period.
func (s *Service) AverageOrderAmount(ctx context.Context, f OrdersFilter) (OrdersReport, error) {
	return s.orders(ctx, ReportAverageOrderAmount, f)
}
