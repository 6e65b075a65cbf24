package config

import (
	"net"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const envPrefix = "SUPERMARKT_"

// SysConfig system configuration
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// DBConfig database config. An empty or "none" Type runs without a
// database; the SQL import and demo seeding are then unavailable.
type DBConfig struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	Table    string `yaml:"table"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// Enabled reports whether a database is configured.
func (c DBConfig) Enabled() bool {
	t := strings.ToLower(strings.TrimSpace(c.Type))
	return t != "" && t != "none"
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// ShelfConfig controls the live inventory.
type ShelfConfig struct {
	Workers     int    `yaml:"workers"`
	AutoAdvance bool   `yaml:"auto_advance"`
	AdvanceSpec string `yaml:"advance_spec"`
	AutoSweep   bool   `yaml:"auto_sweep"`
	SeedDemo    bool   `yaml:"seed_demo"`
	NodeID      int64  `yaml:"node_id"`
}

// WebConfig is the admin HTTP API started by the serve command.
type WebConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// Addr returns host:port for the listener.
func (c WebConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

type AppConfig struct {
	System   SysConfig   `yaml:"system"`
	Database DBConfig    `yaml:"database"`
	Logger   LogConfig   `yaml:"logger"`
	Shelf    ShelfConfig `yaml:"shelf"`
	Web      WebConfig   `yaml:"web"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

func (c *AppConfig) GetReportDir() string {
	return path.Join(c.System.Workdir, "reports")
}

// InitDirs creates the working directories.
func (c *AppConfig) InitDirs() error {
	for _, dir := range []string{c.GetLogDir(), c.GetDataDir(), c.GetReportDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}
	return nil
}

// DefaultAppConfig returns the built-in defaults.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    "supermarkt",
			Location: "Europe/Amsterdam",
			Workdir:  "/var/supermarkt",
			Debug:    false,
		},
		Database: DBConfig{
			Type:     "none",
			Host:     "127.0.0.1",
			Port:     5432,
			Name:     "supermarkt",
			User:     "postgres",
			Passwd:   "",
			Table:    "products",
			MaxConn:  20,
			IdleConn: 5,
		},
		Logger: LogConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "/var/supermarkt/logs/supermarkt.log",
		},
		Shelf: ShelfConfig{
			Workers:     8,
			AutoAdvance: true,
			AdvanceSpec: "@daily",
			AutoSweep:   false,
			SeedDemo:    false,
			NodeID:      1,
		},
		Web: WebConfig{
			Enabled: true,
			Host:    "127.0.0.1",
			Port:    1818,
		},
	}
}

// LoadConfig reads cfile over the defaults and applies SUPERMARKT_*
// environment overrides. An empty cfile uses defaults and environment only.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		if err != nil {
			return nil, errors.Wrap(err, "read config file")
		}
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, "parse config file")
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	setEnvValue("SYSTEM_APPID", &cfg.System.Appid)
	setEnvValue("SYSTEM_LOCATION", &cfg.System.Location)
	setEnvValue("SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("DB_TYPE", &cfg.Database.Type)
	setEnvValue("DB_HOST", &cfg.Database.Host)
	setEnvIntValue("DB_PORT", &cfg.Database.Port)
	setEnvValue("DB_NAME", &cfg.Database.Name)
	setEnvValue("DB_USER", &cfg.Database.User)
	setEnvValue("DB_PWD", &cfg.Database.Passwd)
	setEnvValue("DB_TABLE", &cfg.Database.Table)
	setEnvIntValue("DB_MAX_CONN", &cfg.Database.MaxConn)
	setEnvIntValue("DB_IDLE_CONN", &cfg.Database.IdleConn)
	setEnvBoolValue("DB_DEBUG", &cfg.Database.Debug)

	setEnvValue("LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvValue("LOGGER_FILENAME", &cfg.Logger.Filename)

	setEnvIntValue("SHELF_WORKERS", &cfg.Shelf.Workers)
	setEnvBoolValue("SHELF_AUTO_ADVANCE", &cfg.Shelf.AutoAdvance)
	setEnvValue("SHELF_ADVANCE_SPEC", &cfg.Shelf.AdvanceSpec)
	setEnvBoolValue("SHELF_AUTO_SWEEP", &cfg.Shelf.AutoSweep)
	setEnvBoolValue("SHELF_SEED_DEMO", &cfg.Shelf.SeedDemo)
	setEnvInt64Value("SHELF_NODE_ID", &cfg.Shelf.NodeID)

	setEnvBoolValue("WEB_ENABLED", &cfg.Web.Enabled)
	setEnvValue("WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("WEB_PORT", &cfg.Web.Port)
}

func setEnvValue(name string, val *string) {
	if v := os.Getenv(envPrefix + name); v != "" {
		*val = v
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v := os.Getenv(envPrefix + name); v != "" {
		*val = cast.ToBool(v)
	}
}

func setEnvIntValue(name string, val *int) {
	if v := os.Getenv(envPrefix + name); v != "" {
		*val = cast.ToInt(v)
	}
}

func setEnvInt64Value(name string, val *int64) {
	if v := os.Getenv(envPrefix + name); v != "" {
		*val = cast.ToInt64(v)
	}
}
