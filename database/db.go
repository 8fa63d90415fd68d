package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"

	"fieldops-backend/config"
)

// Open connects to the configured database. The driver is selected by
// DB_DRIVER so the same binary runs against MySQL, PostgreSQL or SQL
// Server installs.
func Open() (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}

	switch config.DBDriver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort, config.DBName)
		return gorm.Open(mysql.Open(dsn), cfg)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			config.DBHost, config.DBUser, config.DBPassword, config.DBName, config.DBPort)
		return gorm.Open(postgres.Open(dsn), cfg)
	case "mssql":
		dsn := "sqlserver://" + config.DBUser + ":" + config.DBPassword + "@" +
			config.DBHost + ":" + config.DBPort + "?database=" + config.DBName
		return gorm.Open(sqlserver.Open(dsn), cfg)
	default:
		return nil, fmt.Errorf("unsupported DB driver: %s", config.DBDriver)
	}
}
