package migration

import (
	"fmt"
	"log"

	"TestBridge-Backend/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.App{}); err != nil {
		log.Fatalf("Error migrating app database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Participation{}); err != nil {
		log.Fatalf("Error migrating participation database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Feedback{}, &entities.FeedbackRating{}); err != nil {
		log.Fatalf("Error migrating feedback database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.BugReport{}, &entities.BugReportImage{}); err != nil {
		log.Fatalf("Error migrating bug report database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.RewardHistory{}, &entities.WithdrawalRequest{}, &entities.TopUpOrder{}); err != nil {
		log.Fatalf("Error migrating reward database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Notification{}); err != nil {
		log.Fatalf("Error migrating notification database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
