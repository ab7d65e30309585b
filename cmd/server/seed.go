package main

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/animalmarket/listing-service/internal/listing/domain"
)

// seedSamples inserts a demo account and the three classic sample listings so
// a fresh instance has something to browse.
func seedSamples(ctx context.Context, repo domain.ListingRepository, users interface {
	Register(ctx context.Context, profile *domain.UserProfile, password string) (*domain.UserProfile, error)
}) error {
	profile, err := users.Register(ctx, &domain.UserProfile{
		DisplayName: "Demo Çiftçi",
		Email:       "demo@animalmarket.example",
		Phone:       "+905551234567",
		Location:    "Ankara",
	}, "demo-password")
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil // already seeded
		}
		return err
	}

	samples := []domain.Listing{
		{Name: "Sarıkız", Species: domain.SpeciesCattle, Age: "3", Price: 25000, Location: "Ankara"},
		{Name: "Karabaş", Species: domain.SpeciesSheep, Age: "2", Price: 4500, Location: "Konya"},
		{Name: "Boncuk", Species: domain.SpeciesGoat, Age: "1", Price: 3200, Location: "İzmir"},
	}
	for i := range samples {
		listing := samples[i]
		listing.ID = uuid.NewString()
		listing.OwnerID = profile.ID
		listing.Phone = profile.Phone
		listing.Status = domain.StatusActive
		listing.CreatedAt = time.Now().UTC()
		if err := repo.Create(ctx, &listing); err != nil {
			return err
		}
	}
	return nil
}
