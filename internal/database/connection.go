package database

import (
	"github.com/adrg/xdg"
	"github.com/pkg/errors"

	"github.com/focuskeeper/focuskeeper/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultDBFile = "focuskeeper/focuskeeper.db"

type DB struct {
	*gorm.DB
}

// GetDefaultDBPath returns the database path under the XDG data directory,
// creating the directory if needed.
func GetDefaultDBPath() (string, error) {
	path, err := xdg.DataFile(defaultDBFile)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve database path")
	}
	return path, nil
}

func Connect(dbPath string) (*DB, error) {
	if dbPath == "" {
		var err error
		dbPath, err = GetDefaultDBPath()
		if err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database %s", dbPath)
	}

	return &DB{db}, nil
}

func (db *DB) Initialize() error {
	err := db.AutoMigrate(&models.MinimizeEvent{}, &models.ErrorLog{})
	if err != nil {
		return errors.Wrap(err, "failed to initialize database schema")
	}

	return nil
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get underlying sql.DB")
	}
	return sqlDB.Close()
}
