package app

import (
	"context"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/talkincode/supermarkt/config"
	"github.com/talkincode/supermarkt/internal/goods"
	"github.com/talkincode/supermarkt/internal/inventory"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// InventoryProvider provides the live shelf
type InventoryProvider interface {
	Inventory() *inventory.Inventory
	Today() goods.Date
}

// AppContext combines all provider interfaces for full application context.
// Commands should depend on this interface rather than on *Application.
type AppContext interface {
	DBProvider
	ConfigProvider
	SchedulerProvider
	InventoryProvider

	ImportCSV(ctx context.Context, paths ...string) (int, error)
	ImportSQL(ctx context.Context, table string) (int, error)
	Simulate(ctx context.Context, days int) ([]inventory.Result, error)
	NewID() string
}
