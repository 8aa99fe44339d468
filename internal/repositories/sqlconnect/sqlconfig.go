package sqlconnect

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"splitledger/internal/config"
	"splitledger/pkg/utils"
)

var DB *sql.DB

func ConnectDb(cfg config.DBConfig) error {
	if DB != nil {
		return nil
	}

	utils.Logger.Infof("Connecting to MariaDB at %s:%s...", cfg.Host, cfg.Port)

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to open DB connection: %w", err)
	}

	// reads only, a small pool is plenty
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err = db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping DB: %w", err)
	}

	DB = db
	utils.Logger.Info("✅ Connected to MariaDB")
	return nil
}
