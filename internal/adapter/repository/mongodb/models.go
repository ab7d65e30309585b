package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/animalmarket/listing-service/internal/listing/domain"
)

// Listings keep their usecase-assigned UUID as _id; Mongo ObjectIDs are only
// used where the store itself mints the identifier.

type listingDocument struct {
	ID          string               `bson:"_id"`
	OwnerID     string               `bson:"owner_id"`
	Name        string               `bson:"name"`
	Species     domain.Species       `bson:"species"`
	Age         string               `bson:"age"`
	Gender      string               `bson:"gender,omitempty"`
	Price       float64              `bson:"price"`
	Description string               `bson:"description,omitempty"`
	Location    string               `bson:"location"`
	Phone       string               `bson:"phone"`
	Photos      []string             `bson:"photos,omitempty"`
	Status      domain.ListingStatus `bson:"status"`
	CreatedAt   time.Time            `bson:"created_at"`
}

type favoriteDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	ListingID string             `bson:"listing_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

type userDocument struct {
	ID           string    `bson:"_id"`
	DisplayName  string    `bson:"display_name"`
	Email        string    `bson:"email"`
	Phone        string    `bson:"phone,omitempty"`
	Location     string    `bson:"location,omitempty"`
	Photo        string    `bson:"photo,omitempty"`
	PasswordHash string    `bson:"password_hash"`
	JoinedAt     time.Time `bson:"joined_at"`
}

func toListingDocument(l *domain.Listing) *listingDocument {
	photos := make([]string, 0, len(l.Photos))
	for _, p := range l.Photos {
		photos = append(photos, string(p))
	}
	return &listingDocument{
		ID:          l.ID,
		OwnerID:     l.OwnerID,
		Name:        l.Name,
		Species:     l.Species,
		Age:         l.Age,
		Gender:      l.Gender,
		Price:       l.Price,
		Description: l.Description,
		Location:    l.Location,
		Phone:       l.Phone,
		Photos:      photos,
		Status:      l.Status,
		CreatedAt:   l.CreatedAt,
	}
}

func toDomainListing(d *listingDocument) *domain.Listing {
	photos := make([]domain.PhotoRef, 0, len(d.Photos))
	for _, p := range d.Photos {
		photos = append(photos, domain.PhotoRef(p))
	}
	return &domain.Listing{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		Name:        d.Name,
		Species:     d.Species,
		Age:         d.Age,
		Gender:      d.Gender,
		Price:       d.Price,
		Description: d.Description,
		Location:    d.Location,
		Phone:       d.Phone,
		Photos:      photos,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
	}
}

func toDomainFavorite(d *favoriteDocument) *domain.Favorite {
	return &domain.Favorite{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		ListingID: d.ListingID,
		CreatedAt: d.CreatedAt,
	}
}

func toDomainProfile(d *userDocument) *domain.UserProfile {
	return &domain.UserProfile{
		ID:          d.ID,
		DisplayName: d.DisplayName,
		Email:       d.Email,
		Phone:       d.Phone,
		Location:    d.Location,
		Photo:       domain.PhotoRef(d.Photo),
		JoinedAt:    d.JoinedAt,
	}
}
