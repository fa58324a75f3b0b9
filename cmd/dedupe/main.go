package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"petcarehub/internal/database"
	"petcarehub/internal/modules/cleanup"
	"petcarehub/internal/repository"
)

// Runs the duplicate booking cleanup for a single owner, or for every owner
// that has bookings when -owner is not set.
func main() {
	_ = godotenv.Load()

	ownerFlag := flag.Int64("owner", 0, "owner id to clean up (0 = all owners)")
	flag.Parse()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	svc := cleanup.NewService(repository.NewBookingRepository(db), log.Printf)
	ctx := context.Background()

	var ownerIDs []int64
	if *ownerFlag > 0 {
		ownerIDs = []int64{*ownerFlag}
	} else {
		if err := db.Table("bookings").Distinct("pet_owner_id").Order("pet_owner_id").
			Pluck("pet_owner_id", &ownerIDs).Error; err != nil {
			log.Fatalf("list owners failed: %v", err)
		}
	}

	var totalDeleted, totalGroups int
	for _, ownerID := range ownerIDs {
		res, err := svc.CleanupDuplicates(ctx, ownerID)
		if err != nil {
			log.Fatalf("cleanup failed for owner %d: %v", ownerID, err)
		}
		totalDeleted += res.DeletedCount
		totalGroups += res.DuplicateGroups
		if len(res.Anomalies) > 0 {
			log.Printf("owner %d has paid duplicates needing manual review: %v", ownerID, res.Anomalies)
		}
	}

	log.Printf("dedupe completed: owners=%d duplicate_groups=%d deleted=%d", len(ownerIDs), totalGroups, totalDeleted)
}
