package database

import (
	"database/sql"
	"log"
)

// RunMigrations checks and applies necessary schema updates
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	// 1. Add reversal_of column to payments if not exists
	if err := addReversalOfColumn(db); err != nil {
		return err
	}

	// 2. Ensure the payment_sequences table exists
	if err := ensurePaymentSequences(db); err != nil {
		return err
	}

	// 3. Ensure the notification dedup constraint exists
	if err := ensureNotificationDedup(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func addReversalOfColumn(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'payments'
				AND column_name = 'reversal_of'
			) THEN
				ALTER TABLE payments ADD COLUMN reversal_of UUID REFERENCES payments(id);
				RAISE NOTICE 'Added reversal_of column to payments';
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to run migration for reversal_of column: %v", err)
		return err
	}
	return nil
}

func ensurePaymentSequences(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS payment_sequences (
			prefix VARCHAR(20) PRIMARY KEY,
			last_seq INTEGER NOT NULL DEFAULT 0
		);
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to ensure payment_sequences table: %v", err)
		return err
	}
	return nil
}

func ensureNotificationDedup(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM pg_constraint
				WHERE conname = 'notifications_user_installment_type_key'
			) THEN
				ALTER TABLE notifications
					ADD CONSTRAINT notifications_user_installment_type_key
					UNIQUE (user_id, installment_id, notification_type);
				RAISE NOTICE 'Added notification dedup constraint';
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to ensure notification dedup constraint: %v", err)
		return err
	}
	return nil
}
