package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/fleetstack/fleetpoint/internal/bootstrap"
	"github.com/fleetstack/fleetpoint/internal/database"
	"github.com/fleetstack/fleetpoint/internal/logger"
)

func main() {
	action := flag.String("action", "seed", "Action to perform: seed, clear")
	demo := flag.Bool("demo", false, "Also insert demo employees, attendance and trips")
	flag.Parse()

	ctx := context.Background()

	fmt.Println("🚀 Fleetpoint Data Seeder")

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		logger.ErrorLog(ctx, "Failed to initialize application", err)
		log.Fatal(err)
	}
	defer app.DB.Close()

	seeder := database.NewDataSeeder(app.DB)

	switch *action {
	case "seed":
		if err := seeder.EnsureAdmin(ctx); err != nil {
			log.Fatalf("❌ Seeding failed: %v", err)
		}
		if *demo {
			if err := seeder.SeedDemo(ctx); err != nil {
				log.Fatalf("❌ Demo seeding failed: %v", err)
			}
		}

	case "clear":
		fmt.Println("⚠️  This will delete all data except the administrator account!")
		fmt.Print("Continue? (yes/no): ")

		var response string
		fmt.Scanln(&response)
		if response != "yes" {
			fmt.Println("Cancelled.")
			return
		}
		if err := seeder.ClearData(ctx); err != nil {
			log.Fatalf("❌ Clear failed: %v", err)
		}

	default:
		fmt.Printf("❌ Unknown action: %s\n", *action)
		flag.PrintDefaults()
		return
	}

	fmt.Println("✅ Done!")
}
