// Where: internal/infra/schema/database.go
// What: Column inspector that connects to the project database through gorm.
// Why: The live table is the most accurate source for an existing model's columns.
package schema

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/poruru/prefab/internal/meta"
)

// DatabaseConfig is one environment entry of config/database.yml.
type DatabaseConfig struct {
	Adapter  string `yaml:"adapter"`
	Database string `yaml:"database"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Socket   string `yaml:"socket"`
	Encoding string `yaml:"encoding"`
	SSLMode  string `yaml:"sslmode"`
}

// DatabaseInspector reads columns from the database configured for Environment.
type DatabaseInspector struct {
	Root        string
	Environment string
	Logger      *slog.Logger
}

// LoadDatabaseConfig reads the environment entry from config/database.yml.
// A missing file or environment yields nil without error.
func LoadDatabaseConfig(root, environment string) (*DatabaseConfig, error) {
	path := filepath.Join(root, meta.DatabaseConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read database config: %w", err)
	}
	var envs map[string]DatabaseConfig
	if err := yaml.Unmarshal(data, &envs); err != nil {
		return nil, fmt.Errorf("parse database config %s: %w", path, err)
	}
	cfg, ok := envs[environment]
	if !ok {
		return nil, nil
	}
	return &cfg, nil
}

func (i DatabaseInspector) Columns(ctx context.Context, table string) ([]Column, error) {
	log := i.logger()
	environment := i.Environment
	if environment == "" {
		environment = meta.DefaultEnvironment
	}
	cfg, err := LoadDatabaseConfig(i.Root, environment)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		log.Debug("no database configured", "environment", environment)
		return nil, nil
	}
	dialector, err := i.dialector(cfg)
	if err != nil {
		return nil, err
	}
	if dialector == nil {
		log.Debug("database file not found", "database", cfg.Database)
		return nil, nil
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("connect %s database: %w", cfg.Adapter, err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	db = db.WithContext(ctx)

	migrator := db.Migrator()
	if !migrator.HasTable(table) {
		log.Debug("table not found", "table", table, "adapter", cfg.Adapter)
		return nil, nil
	}
	types, err := migrator.ColumnTypes(table)
	if err != nil {
		return nil, fmt.Errorf("list columns of %s: %w", table, err)
	}
	columns := make([]Column, 0, len(types))
	for _, ct := range types {
		declared, _ := ct.ColumnType()
		columns = append(columns, Column{
			Name: ct.Name(),
			Type: RailsType(ct.DatabaseTypeName(), declared),
		})
	}
	log.Debug("inspected table", "table", table, "columns", len(columns))
	return columns, nil
}

// dialector maps the Rails adapter name to a gorm driver. A sqlite database
// file that does not exist yields a nil dialector so it is never created.
func (i DatabaseInspector) dialector(cfg *DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Adapter {
	case "sqlite3", "sqlite":
		path := cfg.Database
		if path == ":memory:" {
			return nil, nil
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(i.Root, path)
		}
		if _, err := os.Stat(path); err != nil {
			return nil, nil
		}
		return sqlite.Open(path), nil
	case "mysql", "mysql2", "trilogy":
		return mysql.Open(mysqlDSN(cfg)), nil
	case "postgresql", "postgis", "postgres":
		return postgres.Open(postgresDSN(cfg)), nil
	default:
		return nil, fmt.Errorf("unsupported database adapter: %s", cfg.Adapter)
	}
}

func mysqlDSN(cfg *DatabaseConfig) string {
	address := "tcp(" + hostOr(cfg.Host, "127.0.0.1") + ":" + strconv.Itoa(portOr(cfg.Port, 3306)) + ")"
	if cfg.Socket != "" {
		address = "unix(" + cfg.Socket + ")"
	}
	charset := cfg.Encoding
	if charset == "" {
		charset = "utf8mb4"
	}
	credentials := cfg.Username
	if cfg.Password != "" {
		credentials += ":" + cfg.Password
	}
	return fmt.Sprintf("%s@%s/%s?charset=%s&parseTime=True", credentials, address, cfg.Database, charset)
}

func postgresDSN(cfg *DatabaseConfig) string {
	parts := []string{
		"host=" + hostOr(cfg.Host, "localhost"),
		"port=" + strconv.Itoa(portOr(cfg.Port, 5432)),
		"dbname=" + cfg.Database,
	}
	if cfg.Username != "" {
		parts = append(parts, "user="+cfg.Username)
	}
	if cfg.Password != "" {
		parts = append(parts, "password="+cfg.Password)
	}
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	parts = append(parts, "sslmode="+sslMode)
	return strings.Join(parts, " ")
}

func hostOr(host, fallback string) string {
	if host == "" {
		return fallback
	}
	return host
}

func portOr(port, fallback int) int {
	if port == 0 {
		return fallback
	}
	return port
}

// RailsType maps a database column type to the Rails column type used in
// generated attributes. declared is the full column type (e.g. "tinyint(1)").
func RailsType(databaseType, declared string) string {
	full := strings.ToLower(strings.TrimSpace(declared))
	name := strings.ToLower(strings.TrimSpace(databaseType))
	if name == "" {
		name = full
	}
	if idx := strings.IndexByte(name, '('); idx >= 0 {
		name = name[:idx]
	}
	name = strings.TrimSpace(strings.TrimSuffix(name, " unsigned"))

	switch {
	case full == "tinyint(1)" || name == "bool" || name == "boolean":
		return "boolean"
	case strings.Contains(name, "int") || name == "serial" || name == "bigserial":
		return "integer"
	case name == "decimal" || name == "numeric" || name == "money":
		return "decimal"
	case strings.Contains(name, "float") || strings.Contains(name, "double") || name == "real":
		return "float"
	case strings.HasPrefix(name, "timestamp") || name == "datetime":
		return "datetime"
	case name == "date":
		return "date"
	case strings.HasPrefix(name, "time"):
		return "time"
	case strings.Contains(name, "text") || name == "clob":
		return "text"
	case strings.Contains(name, "blob") || name == "bytea" || strings.Contains(name, "binary"):
		return "binary"
	default:
		return "string"
	}
}

func (i DatabaseInspector) logger() *slog.Logger {
	if i.Logger != nil {
		return i.Logger
	}
	return slog.New(slog.DiscardHandler)
}
