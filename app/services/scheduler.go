package services

import (
	"database/sql"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// StartOverdueScheduler runs the nightly overdue sweep at 00:30 server
// time. The returned cron can be stopped on shutdown.
func StartOverdueScheduler(db *sql.DB) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("30 0 * * *", func() {
		res, err := Sweep(db, time.Now())
		if err != nil {
			log.Printf("overdue sweep failed: %v", err)
			return
		}
		log.Printf("overdue sweep: %d marked overdue, %d notifications created", res.OverdueMarked, res.RemindersCreated)
	})
	if err != nil {
		log.Printf("failed to schedule overdue sweep: %v", err)
	}
	c.Start()
	return c
}
