package gorm

import (
	"errors"
	"fmt"
	"time"

	gormlogrus "github.com/onrik/gorm-logrus"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB struct
type DB struct {
	Postgres *gorm.DB
}

// Pool struct - connection pool limits; zero keeps the database/sql default
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ConnectToPostgreSQL func
func ConnectToPostgreSQL(host, port, username, pass, dbname string, sslmode bool, pool Pool, debug bool) (*DB, error) {
	if host == "" && port == "" && dbname == "" {
		return nil, errors.New("cannot estabished the connection")
	}

	ssl := "disable"
	if sslmode {
		ssl = "require"
	}
	connectionStr := fmt.Sprintf("host=%v user=%v password=%v dbname=%v port=%v sslmode=%v connect_timeout=10", host, username, pass, dbname, port, ssl)

	pg, err := gorm.Open(postgres.Open(connectionStr), &gorm.Config{
		DryRun: false,
		Logger: gormlogrus.New(),
	})
	if err != nil {
		logrus.Error(err)
		return nil, err
	}
	if debug {
		pg.Logger = logger.Default.LogMode(logger.Info)
	}

	sqlDB, err := pg.DB()
	if err != nil {
		return nil, err
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	logrus.WithFields(logrus.Fields{"host": host, "port": port, "database": dbname}).Info("Connected to postgres")
	return &DB{Postgres: pg}, nil
}

// DisconnectPostgres func
func DisconnectPostgres(db *gorm.DB) {
	sqlDb, err := db.DB()
	if err != nil {
		logrus.Error(err)
		return
	}
	err = sqlDb.Close()
	if err != nil {
		logrus.Error(err)
	}
	logrus.Println("Connected with postgres has closed")
}
