package main

import (
	"flag"
	"log"
	"os"

	"github.com/pramodthundathil/blossom-school/app/config"
	"github.com/pramodthundathil/blossom-school/app/database"
)

func main() {
	schemaPath := flag.String("schema", "schema.sql", "path to the schema file")
	flag.Parse()

	config.Load()
	db := config.GetDB()
	defer db.Close()

	schema, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Fatalf("failed to read schema file: %v", err)
	}

	log.Printf("Applying schema from %s...", *schemaPath)
	if _, err := db.Exec(string(schema)); err != nil {
		log.Fatalf("failed to apply schema: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	log.Println("Schema applied successfully")
}
