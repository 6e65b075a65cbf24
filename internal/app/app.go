package app

import (
	"context"
	"os"
	"runtime/debug"
	"sync"
	"time"
	_ "time/tzdata"

	EventBus "github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"

	"github.com/talkincode/supermarkt/config"
	"github.com/talkincode/supermarkt/internal/domain"
	"github.com/talkincode/supermarkt/internal/goods"
	"github.com/talkincode/supermarkt/internal/importer"
	"github.com/talkincode/supermarkt/internal/inventory"
)

// ErrNoDatabase is returned by operations that need the database when none
// is configured.
var ErrNoDatabase = errors.New("no database configured")

type Application struct {
	appConfig *config.AppConfig
	gormDB    *gorm.DB
	sched     *cron.Cron
	bus       EventBus.Bus
	inventory *inventory.Inventory
	idNode    *snowflake.Node

	clockMu sync.RWMutex
	clock   func() goods.Date
}

// Ensure Application implements all interfaces
var (
	_ DBProvider        = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ InventoryProvider = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	bus := EventBus.New()
	return &Application{
		appConfig: appConfig,
		bus:       bus,
		inventory: inventory.New(bus),
		clock:     goods.Today,
	}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
}

func (a *Application) Inventory() *inventory.Inventory {
	return a.inventory
}

func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// Today is the day new products are created on.
func (a *Application) Today() goods.Date {
	a.clockMu.RLock()
	defer a.clockMu.RUnlock()
	return a.clock()
}

// SetClock replaces the day source (used in tests).
func (a *Application) SetClock(clock func() goods.Date) {
	a.clockMu.Lock()
	a.clock = clock
	a.clockMu.Unlock()
}

// NewID generates a product id for rows that have none.
func (a *Application) NewID() string {
	return a.idNode.Generate().String()
}

func (a *Application) Init(cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger(cfg)

	a.idNode, err = snowflake.NewNode(cfg.Shelf.NodeID)
	if err != nil {
		return errors.Wrap(err, "init id generator")
	}

	if cfg.Database.Enabled() {
		a.gormDB, err = getDatabase(cfg.Database, cfg.System.Location)
		if err != nil {
			return err
		}
		zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)
		if err := a.MigrateDB(cfg.Database.Debug); err != nil {
			zap.S().Errorf("database migration failed: %v", err)
		}
	}

	a.subscribeEvents()

	if cfg.Shelf.SeedDemo {
		a.checkProducts()
		a.loadDemoProducts(context.Background())
	}
	return nil
}

func (a *Application) initLogger(cfg *config.AppConfig) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stderr"}

	var logger *zap.Logger
	var err error
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stderr),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

func (a *Application) MigrateDB(track bool) (err error) {
	if a.gormDB == nil {
		return ErrNoDatabase
	}
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEBUG_TRACE") != "" {
				debug.PrintStack()
			}
			if err2, ok := err1.(error); ok {
				err = err2
				zap.S().Error(err2.Error())
			}
		}
	}()
	db := a.gormDB
	if track {
		db = db.Debug()
	}
	return db.Migrator().AutoMigrate(domain.Tables...)
}

func (a *Application) DropAll() {
	if a.gormDB != nil {
		_ = a.gormDB.Migrator().DropTable(domain.Tables...)
	}
}

func (a *Application) InitDb() {
	if a.gormDB == nil {
		return
	}
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
	if err := a.gormDB.Migrator().AutoMigrate(domain.Tables...); err != nil {
		zap.S().Error(err)
	}
}

// ImportOptions are the importer settings for the current day.
func (a *Application) ImportOptions() importer.Options {
	opts := importer.Options{Today: a.Today()}
	if a.idNode != nil {
		opts.NewID = a.NewID
	}
	return opts
}

// ImportCSV reads the given files and adds every valid product to the
// inventory. Rejected rows and duplicate ids are logged and returned in err.
func (a *Application) ImportCSV(ctx context.Context, paths ...string) (added int, err error) {
	res, err := importer.ImportCSVFiles(ctx, paths, a.ImportOptions())
	if err != nil {
		return 0, err
	}
	return a.addImported(res, "csv")
}

// ImportSQL reads table from the configured database. An empty table uses
// the configured one.
func (a *Application) ImportSQL(ctx context.Context, table string) (added int, err error) {
	if a.gormDB == nil {
		return 0, ErrNoDatabase
	}
	if table == "" {
		table = a.appConfig.Database.Table
	}
	res, err := importer.ImportSQL(ctx, importer.NewGormSource(a.gormDB), table, a.ImportOptions())
	if err != nil {
		return 0, err
	}
	return a.addImported(res, "sql")
}

func (a *Application) addImported(res *importer.Result, source string) (int, error) {
	for _, re := range res.Rejected {
		zap.L().Warn("import row rejected",
			zap.String("namespace", "importer"),
			zap.String("source", re.Source),
			zap.Int("line", re.Line),
			zap.String("id", re.ID),
			zap.Error(re.Err))
	}
	added, addErr := a.inventory.AddAll(res.Products)
	zap.L().Info("import finished",
		zap.String("namespace", "importer"),
		zap.String("kind", source),
		zap.Int("added", added),
		zap.Int("rejected", len(res.Rejected)))
	return added, multierr.Combine(res.Err(), addErr)
}

// Simulate runs every live product forward on the configured worker pool.
func (a *Application) Simulate(ctx context.Context, days int) ([]inventory.Result, error) {
	return a.inventory.SimulateAll(ctx, days, a.appConfig.Shelf.Workers)
}

// Start scheduler job runner
func (a *Application) StartBackgroundJobs() {
	a.initJob()
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		<-a.sched.Stop().Done()
	}
	a.bus.WaitAsync()
	_ = zap.L().Sync()
}
