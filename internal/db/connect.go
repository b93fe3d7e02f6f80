// Package db opens the backing store and handles schema migration and
// first-run seeding.
package db

import (
	"fmt"

	"github.com/psychedelic-theory/climbing-log-manager/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds a MySQL DSN from database config.
func DSN(c config.DatabaseConfig) string {
	cred := c.User
	if c.Password != "" {
		cred = fmt.Sprintf("%s:%s", c.User, c.Password)
	}
	return fmt.Sprintf("%s@tcp(%s:%d)/%s?parseTime=true", cred, c.Host, c.Port, c.Name)
}

// Connect opens a GORM connection for the configured driver. SQLite is the
// default single-file store; MySQL is available for shared deployments.
func Connect(c config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	switch c.Driver {
	case config.DriverSQLite:
		db, err := gorm.Open(sqlite.Open(c.Path), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("db: open sqlite %s: %w", c.Path, err)
		}
		return db, nil
	case config.DriverMySQL:
		db, err := gorm.Open(mysql.Open(DSN(c)), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("db: connect to %s:%d/%s: %w", c.Host, c.Port, c.Name, err)
		}
		return db, nil
	}
	return nil, fmt.Errorf("db: unknown driver %q", c.Driver)
}
