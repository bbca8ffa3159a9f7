// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/clock"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
	"github.com/amriddinov-m/panasonic-api/internal/domain"
	"github.com/amriddinov-m/panasonic-api/internal/domain/auth"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/category"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/product"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/user"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/warehouse"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/income"
	"github.com/amriddinov-m/panasonic-api/internal/domain/filter"
	v1 "github.com/amriddinov-m/panasonic-api/internal/infrastructure/http/v1"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/storage/postgres"
	"github.com/amriddinov-m/panasonic-api/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Connect to database
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	services := v1.NewServices(v1.ServiceDeps{
		TxManager: postgres.NewTxManager(pool),
		Clock:     clock.System{},
	})

	// Seed admin user
	admin, err := seedAdminUser(ctx, services, log)
	if err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	// Seed demo data if requested
	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, services, log, admin.ID); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		if err := printDevToken(secret, admin); err != nil {
			log.Warnw("failed to issue development token", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// findUserByPhone returns nil when no live user has phone.
func findUserByPhone(ctx context.Context, services *v1.Services, phone string) (*user.User, error) {
	f := domain.DefaultListFilter()
	f.Limit = 1
	f.Conditions = []filter.Item{filter.Eq("phone_number", phone)}
	res, err := services.Users.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(res.Items) == 0 {
		return nil, nil
	}
	return res.Items[0], nil
}

func seedAdminUser(ctx context.Context, services *v1.Services, log *logger.Logger) (*user.User, error) {
	phone := getEnv("ADMIN_PHONE", "+998900000000")
	password := getEnv("ADMIN_PASSWORD", "Admin123!")

	existing, err := findUserByPhone(ctx, services, phone)
	if err != nil {
		return nil, fmt.Errorf("check admin exists: %w", err)
	}
	if existing != nil {
		log.Infow("admin user already exists", "phone", phone, "user_id", existing.ID)
		return existing, nil
	}

	admin := user.NewUser(services.Users.Now(), phone)
	admin.FirstName = "System"
	admin.LastName = "Admin"
	admin.Role = user.RoleAdmin
	admin.Status = user.StatusActive
	if err := services.Users.SetPassword(admin, password); err != nil {
		return nil, err
	}
	if err := services.Users.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin user: %w", err)
	}

	log.Infow("admin user created", "phone", phone, "user_id", admin.ID)
	return admin, nil
}

func seedDemoData(ctx context.Context, services *v1.Services, log *logger.Logger, adminID id.ID) error {
	log.Info("seeding demo data...")
	now := services.Users.Now()

	// 1. Dealer and supplier
	dealerPhone := "+998901111111"
	dealer, err := findUserByPhone(ctx, services, dealerPhone)
	if err != nil {
		return err
	}
	if dealer == nil {
		dealer = user.NewUser(now, dealerPhone)
		dealer.FirstName, dealer.LastName = "Demo", "Dealer"
		dealer.Role = user.RoleDealer
		dealer.Status = user.StatusActive
		if err := services.Users.Create(ctx, dealer); err != nil {
			return fmt.Errorf("create dealer: %w", err)
		}
	}

	supplierPhone := "+998902222222"
	supplier, err := findUserByPhone(ctx, services, supplierPhone)
	if err != nil {
		return err
	}
	if supplier == nil {
		supplier = user.NewUser(now, supplierPhone)
		supplier.FirstName, supplier.LastName = "Panasonic", "Supply"
		supplier.Status = user.StatusActive
		if err := services.Users.Create(ctx, supplier); err != nil {
			return fmt.Errorf("create supplier: %w", err)
		}
	}

	// 2. Warehouses
	central := warehouse.NewWarehouse(now, "Central warehouse")
	central.UserID = &adminID
	if err := services.Warehouses.Create(ctx, central); err != nil {
		return fmt.Errorf("create warehouse: %w", err)
	}
	dealerWh := warehouse.NewWarehouse(now, "Dealer warehouse")
	dealerWh.ResponsibleID = &dealer.ID
	dealerWh.UserID = &adminID
	if err := services.Warehouses.Create(ctx, dealerWh); err != nil {
		return fmt.Errorf("create warehouse: %w", err)
	}

	// 3. Categories and products
	catalog := []struct {
		category string
		products []struct {
			name  string
			price string
		}
	}{
		{"Air conditioners", []struct {
			name  string
			price string
		}{{"CS-PZ25WKD", "520.00"}, {"CS-TZ35TKEW", "690.00"}}},
		{"Washing machines", []struct {
			name  string
			price string
		}{{"NA-148VG6", "610.00"}}},
		{"Microwaves", []struct {
			name  string
			price string
		}{{"NN-ST34HM", "115.50"}, {"NN-GT45KW", "149.90"}}},
	}

	receipt := income.New(now, &adminID, supplier.ID, &central.ID)
	for _, c := range catalog {
		cat := category.NewCategory(now, c.category)
		cat.UserID = &adminID
		if err := services.Categories.Create(ctx, cat); err != nil {
			return fmt.Errorf("create category %q: %w", c.category, err)
		}
		for _, p := range c.products {
			prod := product.NewProduct(now, cat.ID, p.name, types.MustMoney(p.price))
			prod.UserID = &adminID
			if err := services.Products.Create(ctx, prod); err != nil {
				return fmt.Errorf("create product %q: %w", p.name, err)
			}
			receipt.AddLine(prod.ID, 20, prod.Price)
		}
	}

	// 4. Opening stock: one finished income into the central warehouse
	if err := services.Incomes.Create(ctx, receipt); err != nil {
		return fmt.Errorf("create opening income: %w", err)
	}
	if _, err := services.Incomes.ChangeStatus(ctx, receipt.ID, string(income.StatusFinished)); err != nil {
		return fmt.Errorf("finish opening income: %w", err)
	}

	log.Infow("demo data seeded successfully",
		"dealer_id", dealer.ID,
		"central_warehouse_id", central.ID,
		"opening_income_id", receipt.ID,
	)
	return nil
}

func printDevToken(secret string, admin *user.User) error {
	cfg := auth.DefaultJWTConfig(secret)
	cfg.Issuer = os.Getenv("JWT_ISSUER")

	token, err := auth.NewTokenValidator(cfg).Sign(auth.Claims{
		UserID: admin.ID.String(),
		Phone:  admin.PhoneNumber,
		Role:   string(admin.Role),
	}, 24*time.Hour, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("development token (24h): %s\n", token)
	return nil
}
