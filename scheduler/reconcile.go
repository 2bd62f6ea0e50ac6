package scheduler

import (
	"context"
	"log"
	"time"

	"coursehive_server/services"

	"gorm.io/gorm"
)

// StartReconcileScheduler runs the rollup drift sweep once at start and
// then every 24 hours.
func StartReconcileScheduler(db *gorm.DB) {
	ticker := time.NewTicker(24 * time.Hour)
	svc := services.NewProgressService(db)

	go func() {
		log.Println("Running initial rollup reconciliation...")
		if err := svc.ReconcileRollups(context.Background()); err != nil {
			log.Printf("Error during initial reconciliation: %v", err)
		} else {
			log.Println("Initial reconciliation completed successfully")
		}
	}()

	go func() {
		for range ticker.C {
			log.Println("Running scheduled rollup reconciliation...")
			if err := svc.ReconcileRollups(context.Background()); err != nil {
				log.Printf("Error during scheduled reconciliation: %v", err)
			} else {
				log.Println("Scheduled reconciliation completed successfully")
			}
		}
	}()
}
