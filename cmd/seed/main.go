package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"petcarehub/internal/database"
	"petcarehub/internal/domain"
	"petcarehub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "petcarehub.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM pets")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	pets := repository.NewPetRepository(db)
	services := repository.NewServiceRepository(db)
	bookings := repository.NewBookingRepository(db)
	payments := repository.NewPaymentRepository(db)

	log.Println("Creating users...")
	providerHash, _ := bcrypt.GenerateFromPassword([]byte("provider123"), bcrypt.DefaultCost)
	provider := domain.User{
		Email:        "groomer@petcarehub.io",
		PasswordHash: string(providerHash),
		Role:         domain.RoleProvider,
		Name:         "Happy Paws Grooming",
	}
	if err := users.Create(ctx, &provider); err != nil {
		log.Fatal("seed provider:", err)
	}
	log.Println("Provider created: groomer@petcarehub.io / provider123")

	ownerHash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
	owner := domain.User{
		Email:        "alex@example.com",
		PasswordHash: string(ownerHash),
		Role:         domain.RoleOwner,
		Name:         "Alex Morgan",
	}
	if err := users.Create(ctx, &owner); err != nil {
		log.Fatal("seed owner:", err)
	}
	log.Println("Owner created: alex@example.com / owner123")

	log.Println("Creating pets...")
	rex := domain.Pet{OwnerID: owner.ID, Name: "Rex", Species: "dog", Breed: "labrador", Age: 3}
	if err := pets.Create(ctx, &rex); err != nil {
		log.Fatal("seed pet:", err)
	}

	log.Println("Creating services...")
	grooming := domain.Service{
		ProviderID:  provider.ID,
		Name:        "Dog Grooming",
		Description: "Full wash, cut and nail trim",
		Price:       50.00,
	}
	if err := services.Create(ctx, &grooming); err != nil {
		log.Fatal("seed service:", err)
	}
	sitting := domain.Service{
		ProviderID:  provider.ID,
		Name:        "Cat Sitting",
		Description: "Daily home visit",
		Price:       30.00,
	}
	if err := services.Create(ctx, &sitting); err != nil {
		log.Fatal("seed service:", err)
	}

	// Two confirmed unpaid bookings on the same day, so an inferred
	// reconciliation and a duplicate cleanup both have material to work with.
	log.Println("Creating bookings...")
	for i := 0; i < 2; i++ {
		b := domain.Booking{
			PetOwnerID:    owner.ID,
			ServiceID:     grooming.ID,
			PetID:         rex.ID,
			ProviderID:    provider.ID,
			BookingDate:   "2024-03-21",
			Status:        domain.BookingConfirmed,
			PaymentStatus: domain.PaymentUnpaid,
		}
		if err := bookings.Create(ctx, &b); err != nil {
			log.Fatal("seed booking:", err)
		}
	}

	log.Println("Creating pending payment...")
	p := domain.Payment{
		ExternalReference: "pi_seed_grooming_1",
		ServiceName:       grooming.Name,
		Amount:            5000,
		Currency:          "usd",
		Status:            domain.PaymentStatusPending,
		CreatedAt:         time.Now().UTC(),
	}
	if err := payments.Create(ctx, owner.ID, grooming.ID, &p); err != nil {
		log.Fatal("seed payment:", err)
	}

	log.Println("Seed complete.")
}
