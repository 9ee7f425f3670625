package main

import (
	"log"
	"time"

	"github.com/pramodthundathil/blossom-school/app/config"
	"github.com/pramodthundathil/blossom-school/app/services"
)

// One-shot overdue sweep, for cron environments that prefer running it
// outside the server process.
func main() {
	config.Load()
	db := config.GetDB()
	defer db.Close()

	result, err := services.Sweep(db, time.Now())
	if err != nil {
		log.Fatalf("sweep failed: %v", err)
	}
	log.Printf("sweep complete: %d marked overdue, %d notifications, %d upcoming notices",
		result.OverdueMarked, result.RemindersCreated, result.UpcomingNotified)
}
