package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/pointtaken/timesheet/internal/auth"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"time_entries", "customer_notes", "projects", "users"} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		cost := cfg.Security.BCryptCost
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}
		hash, err := auth.HashPassword("password", cost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		users := []struct {
			Email string
			Name  string
		}{
			{"admin@pointtaken.no", "Administrator"},
			{"kariann@pointtaken.no", "Kariann"},
			{"pm@customer.com", "Customer PM"},
		}

		for _, u := range users {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM users WHERE email = $1", u.Email).Scan(&exists); err == nil {
				fmt.Println("user already exists:", u.Email)
				continue
			}
			_, err := db.Exec(
				"INSERT INTO users (email, name, password_hash, is_active, created_at, updated_at) VALUES ($1, $2, $3, true, now(), now())",
				u.Email, u.Name, hash,
			)
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Println("Seeded user:", u.Email)
		}

		projectID := uuid.NewString()
		var exists int
		if err := db.QueryRow("SELECT 1 FROM projects WHERE name = $1", "Demo Webshop").Scan(&exists); err == nil {
			fmt.Println("demo project already exists")
			return
		}

		_, err = db.Exec(`INSERT INTO projects
			(id, name, budget_hours, hourly_rate, consultants, consultant_rates, consultant_percentages,
			 project_manager_name, project_manager_rate, categories, access_email, include_manager_in_budget,
			 created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())`,
			projectID, "Demo Webshop", 500.0, 1500.0,
			`["Anna","Bjørn"]`, `{"Bjørn":1800}`, `{"Bjørn":50}`,
			"Kariann (Prosjektleder)", 1600.0,
			`["Utvikling","Design","Møter"]`, "pm@customer.com", true,
		)
		if err != nil {
			log.Fatalf("failed to insert demo project: %v", err)
		}

		fmt.Println("Seeded demo project:", projectID)
	},
}
