package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/pramodthundathil/blossom-school/app/config"
	"github.com/pramodthundathil/blossom-school/app/database"
	"github.com/pramodthundathil/blossom-school/app/models"
	"github.com/pramodthundathil/blossom-school/app/routes/auth"
)

func main() {
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "login password")
	firstName := flag.String("first-name", "Admin", "first name")
	lastName := flag.String("last-name", "User", "last name")
	role := flag.String("role", "admin", "role to grant")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}
	if len(*password) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	config.Load()
	db := config.GetDB()
	defer db.Close()

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:     *email,
		Password:  hashed,
		FirstName: *firstName,
		LastName:  *lastName,
		IsStaff:   true,
	}
	if err := database.CreateUser(db, user); err != nil {
		log.Fatalf("error creating user: %v", err)
	}

	roleID, err := database.EnsureRole(db, *role)
	if err != nil {
		log.Fatalf("error ensuring role: %v", err)
	}
	if err := database.AssignUserRole(db, user.ID, roleID); err != nil {
		log.Fatalf("error assigning role: %v", err)
	}

	fmt.Printf("User created successfully: %s %s (%s) with role %s\n",
		user.FirstName, user.LastName, user.Email, *role)
}
