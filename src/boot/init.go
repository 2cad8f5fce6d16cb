package boot

import (
	"context"
	"log"
	"plannova/src/common"
	"plannova/src/config"
	"plannova/src/db"
	"plannova/src/lib"
	"plannova/src/models"
	"plannova/src/workflow"
	"time"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Vendor{},
		&models.Service{},
		&models.Event{},
		&models.BookingRequest{},
		&models.Payment{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

func InitBroker(ctx context.Context) {
	if config.IsLocal() && config.KAFKA_BROKER != "" {
		go func() {
			if _, err := lib.KafkaCreateTopics(ctx, config.WORKFLOW_TOPIC); err != nil {
				log.Printf("Could not create topic %s: %s\n", config.WORKFLOW_TOPIC, err.Error())
			}
		}()
	}
	if err := common.NotificationConsumers(ctx); err != nil {
		log.Printf("Error starting notification consumers: %s\n", err.Error())
	}
}

// InitScheduler registers the periodic integrity sweep and starts the scheduler.
func InitScheduler(store workflow.SweepStore) {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	_, err = lib.CreateCronJob("integrity-sweep", config.INTEGRITY_SWEEP_INTERVAL, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := workflow.Sweep(ctx, store, time.Now(), config.STALE_PAYOUT_AFTER); err != nil {
			log.Printf("[sweep] Error running sweep: %s\n", err.Error())
		}
	})
	if err != nil {
		log.Printf("Error running job: %s\n", err.Error())
		return
	}
	log.Println("Jobs in queue:", len(sched.Jobs()))
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while shutting stopping Scheduler. Check logs for info")
		return
	}
}
