package main

import (
	"fmt"
	"log"
	"os"

	"campusfinder/backend/internal/models"
	"campusfinder/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "ban":
		requireArgs(3, "Usage: admin ban <email>")
		if err := setBanned(storageSvc, os.Args[2], true); err != nil {
			log.Fatalf("Error banning user: %v", err)
		}
		fmt.Printf("User %s has been banned.\n", os.Args[2])
	case "unban":
		requireArgs(3, "Usage: admin unban <email>")
		if err := setBanned(storageSvc, os.Args[2], false); err != nil {
			log.Fatalf("Error unbanning user: %v", err)
		}
		fmt.Printf("User %s has been unbanned.\n", os.Args[2])
	case "set-role":
		requireArgs(4, "Usage: admin set-role <email> <normal|assisted|authority|admin>")
		if err := setRole(storageSvc, os.Args[2], os.Args[3]); err != nil {
			log.Fatalf("Error setting role: %v", err)
		}
		fmt.Printf("User %s is now %s.\n", os.Args[2], os.Args[3])
	case "reconcile":
		requireArgs(3, "Usage: admin reconcile <email>")
		points, err := reconcileKarma(storageSvc, os.Args[2])
		if err != nil {
			log.Fatalf("Error reconciling karma: %v", err)
		}
		fmt.Printf("User %s reconciled to %d points from the ledger.\n", os.Args[2], points)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func requireArgs(n int, usage string) {
	if len(os.Args) < n {
		fmt.Println(usage)
		os.Exit(1)
	}
}

func findUser(s storage.Storage, email string) (*models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("no user with email %s", email)
	}
	return user, nil
}

func setBanned(s storage.Storage, email string, banned bool) error {
	user, err := findUser(s, email)
	if err != nil {
		return err
	}
	user.IsBanned = banned
	return s.SaveUser(user)
}

func setRole(s storage.Storage, email, role string) error {
	switch role {
	case models.RoleNormal, models.RoleAssisted, models.RoleAuthority, models.RoleAdmin:
	default:
		return fmt.Errorf("unknown role %q", role)
	}
	user, err := findUser(s, email)
	if err != nil {
		return err
	}
	user.Role = role
	return s.SaveUser(user)
}

// reconcileKarma overwrites the cached counter with the ledger sum.
func reconcileKarma(s storage.Storage, email string) (int, error) {
	user, err := findUser(s, email)
	if err != nil {
		return 0, err
	}
	points, err := s.SumReputationEvents(user.ID)
	if err != nil {
		return 0, err
	}
	if err := s.SetReputation(user.ID, points); err != nil {
		return 0, err
	}
	return points, nil
}
