// file: database/connect.go
package database

import (
	"log"
	"time"

	"github.com/IkedaLab-Daniel/BambaCTF/config"
	"github.com/IkedaLab-Daniel/BambaCTF/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	var err error
	DB, err = gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// 配置连接池，避免 MySQL wait_timeout 导致的失效连接
	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB:", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection successfully established and connection pool configured.")
}

func MigrateTables() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.ChallengeCategory{},
		&models.Challenge{},
		&models.Team{},
		&models.TeamMembership{},
		&models.ChallengeInstance{},
		&models.Submission{},
		&models.AIRequestLog{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	log.Println("Database migration completed.")
}
