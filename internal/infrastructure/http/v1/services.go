package v1

import (
	"github.com/amriddinov-m/panasonic-api/internal/core/clock"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/category"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/product"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/user"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/warehouse"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/income"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/movement"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/order"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/outcome"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/plan"
	"github.com/amriddinov-m/panasonic-api/internal/domain/posting"
	"github.com/amriddinov-m/panasonic-api/internal/domain/registers/stock"
	"github.com/amriddinov-m/panasonic-api/internal/domain/reports"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/cache"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/metrics"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/storage/postgres"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/storage/postgres/document_repo"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/storage/postgres/register_repo"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/storage/postgres/report_repo"
)

// ServiceDeps are the infrastructure pieces services are built from.
type ServiceDeps struct {
	TxManager     *postgres.TxManager
	Clock         clock.Clock
	ReportOptions reports.Options

	// Optional; nil disables the feature
	ReportCache *cache.ReportCache
	Locker      *cache.Locker
	Metrics     *metrics.Metrics
}

// Services holds every domain service of the API.
type Services struct {
	Users      *user.Service
	Categories *category.Service
	Products   *product.Service
	Warehouses *warehouse.Service

	Stock *stock.Service

	Incomes   *income.Service
	Outcomes  *outcome.Service
	Movements *movement.Service
	Orders    *order.Service
	Plans     *plan.Service

	Reports *reports.Service
}

// NewServices wires repositories and services over one transaction manager.
func NewServices(d ServiceDeps) *Services {
	txm := d.TxManager
	clk := d.Clock
	if clk == nil {
		clk = clock.System{}
	}

	s := &Services{}

	// --- catalogs ---
	s.Users = user.NewService(catalog_repo.NewUserRepo(txm), txm, clk)
	s.Categories = category.NewService(catalog_repo.NewCategoryRepo(txm), txm, clk)
	s.Products = product.NewService(catalog_repo.NewProductRepo(txm), s.Categories, txm, clk)
	s.Warehouses = warehouse.NewService(catalog_repo.NewWarehouseRepo(txm), s.Users, txm, clk)

	// --- ledger and posting ---
	s.Stock = stock.NewService(register_repo.NewStockRepo(txm), txm)
	if d.Metrics != nil {
		s.Stock.WithRecorder(d.Metrics)
	}

	var invalidators []posting.Invalidator
	if d.ReportCache != nil {
		invalidators = append(invalidators, d.ReportCache)
	}
	engine := posting.NewEngine(txm, s.Stock, invalidators...)

	deps := documents.Deps{
		TxManager: txm,
		Engine:    engine,
		Clock:     clk,
		Refs: documents.References{
			Users:      s.Users,
			Warehouses: s.Warehouses,
			Products:   s.Products,
		},
	}
	if d.Locker != nil {
		deps.Locker = d.Locker
	}

	// --- documents ---
	s.Incomes = income.NewService(document_repo.NewIncomeRepo(txm), deps)
	s.Outcomes = outcome.NewService(document_repo.NewOutcomeRepo(txm), deps)
	s.Movements = movement.NewService(document_repo.NewMovementRepo(txm), deps)
	s.Orders = order.NewService(document_repo.NewOrderRepo(txm), deps)
	s.Plans = plan.NewService(document_repo.NewPlanRepo(txm), deps, s.Users)

	// --- reports ---
	s.Reports = reports.NewService(report_repo.NewReportRepo(txm), clk, d.ReportOptions)
	if d.ReportCache != nil {
		if d.Metrics != nil {
			d.ReportCache.WithRecorder(d.Metrics)
		}
		s.Reports.WithCache(d.ReportCache)
	}

	return s
}
