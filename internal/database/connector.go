package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"portfolio_backend/internal/config"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	_ "modernc.org/sqlite" // pure Go SQLite driver (no CGO)
)

var ErrClosed = errors.New("database connector is closed")

// Connector лениво открывает подключение к БД и переиспользует его
// до явного Close. Создается один раз при старте и передается зависимостям.
type Connector struct {
	cfg config.Database

	mu     sync.Mutex
	db     *gorm.DB
	closed bool
}

func NewConnector(cfg config.Database) *Connector {
	return &Connector{cfg: cfg}
}

// DB возвращает общий *gorm.DB, открывая его при первом вызове.
// Конкурентные первые вызовы получают одно и то же подключение.
func (c *Connector) DB(ctx context.Context) (*gorm.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if c.db != nil {
		return c.db, nil
	}

	db, err := c.open(ctx)
	if err != nil {
		return nil, err
	}

	c.db = db
	return db, nil
}

// Ping проверяет, что база отвечает (используется в /healthz)
func (c *Connector) Ping(ctx context.Context) error {
	db, err := c.DB(ctx)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close закрывает пул. Повторные вызовы безопасны.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.db == nil {
		return nil
	}

	sqlDB, err := c.db.DB()
	c.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (c *Connector) open(ctx context.Context) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if c.cfg.LogSQL {
		logLevel = gormlogger.Info
	}

	gormCfg := &gorm.Config{
		Logger: logger.NewGormLogger(logLevel),
	}

	logger.CtxInfo(ctx, "Connecting to database...", "driver", c.cfg.Driver, "name", c.cfg.Name)

	var (
		db  *gorm.DB
		err error
	)

	switch c.cfg.Driver {
	case "postgres", "":
		db, err = gorm.Open(postgres.Open(postgresDSN(c.cfg.URL, c.cfg.Name)), gormCfg)
	case "mysql":
		db, err = gorm.Open(mysql.Open(mysqlDSN(c.cfg.URL, c.cfg.Name)), gormCfg)
	case "sqlite":
		db, err = openSQLite(c.cfg.URL, gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get *sql.DB from GORM: %w", err)
	}

	if c.cfg.Driver != "sqlite" {
		if c.cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(c.cfg.MaxOpenConns)
		}
		if c.cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(c.cfg.MaxIdleConns)
		}
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database unavailable: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	logger.CtxInfo(ctx, "Database connected", "driver", c.cfg.Driver)
	return db, nil
}

func openSQLite(path string, gormCfg *gorm.Config) (*gorm.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// SQLite допускает одного писателя
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	return gorm.Open(sqlite.Dialector{Conn: sqlDB}, gormCfg)
}

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}

// postgresDSN подставляет имя базы, если строка подключения его не содержит
func postgresDSN(raw, name string) string {
	if name == "" {
		return raw
	}

	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return raw
		}
		if strings.Trim(u.Path, "/") == "" {
			u.Path = "/" + name
		}
		return u.String()
	}

	if strings.Contains(raw, "dbname=") {
		return raw
	}
	return strings.TrimSpace(raw + " dbname=" + name)
}

// mysqlDSN: "user:pass@tcp(host:3306)/" + name
func mysqlDSN(raw, name string) string {
	if name == "" {
		return raw
	}

	base, params, hasParams := strings.Cut(raw, "?")
	idx := strings.LastIndex(base, "/")
	if idx >= 0 && idx < len(base)-1 {
		return raw
	}
	if idx < 0 {
		base += "/"
	}
	base += name

	if hasParams {
		return base + "?" + params
	}
	return base
}
