package db

import (
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tallyclank/internal/config"
)

// DB holds the gorm handle plus the underlying sql.DB for pool tuning
// and liveness checks.
type DB struct {
	Gorm *gorm.DB
	SQL  *sql.DB
}

// Open connects to Postgres and applies the pool limits from cfg. The
// sync job upserts a full token page inside one run, so the open-conn
// ceiling has to leave headroom for API reads happening at the same time.
func Open(cfg config.DBConfig) (*DB, error) {
	gcfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	gdb, err := gorm.Open(postgres.Open(cfg.DSN), gcfg)
	if err != nil {
		return nil, err
	}

	sqldb, err := gdb.DB()
	if err != nil {
		return nil, err
	}

	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqldb.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return &DB{Gorm: gdb, SQL: sqldb}, nil
}

func (d *DB) Close() error {
	if d == nil || d.SQL == nil {
		return nil
	}
	return d.SQL.Close()
}

// Ping verifies the connection at startup so a bad DSN fails the boot
// instead of the first request.
func (d *DB) Ping() error {
	if d == nil || d.SQL == nil {
		return sql.ErrConnDone
	}
	return d.SQL.Ping()
}

// SetTimezone pins the session timezone. Token created_at values come from
// the upstream feed in UTC and the dashboard sorts on them, so the session
// must not reinterpret them.
func (d *DB) SetTimezone(tz string) error {
	if tz == "" {
		return nil
	}
	return d.Gorm.Exec("SELECT set_config('TimeZone', ?, false)", tz).Error
}
