package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/animalmarket/listing-service/internal/listing/domain"
	"github.com/animalmarket/listing-service/internal/platform/logger"
)

type ListingRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewListingRepository(db *mongo.Database, log *logger.Logger) *ListingRepository {
	return &ListingRepository{
		collection: db.Collection("listings"),
		logger:     log.Named("ListingRepository"),
	}
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	_, err := r.collection.InsertOne(ctx, toListingDocument(listing))
	if err != nil {
		r.logger.Error("InsertOne failed", "listing_id", listing.ID, "error", err.Error())
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	var doc listingDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		r.logger.Error("FindOne failed", "listing_id", id, "error", err.Error())
		return nil, err
	}
	return toDomainListing(&doc), nil
}

func (r *ListingRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Listing, error) {
	query := bson.M{}
	if filter.OwnerID != "" {
		query["owner_id"] = filter.OwnerID
	}
	if filter.Species != "" {
		query["species"] = filter.Species
	}
	if filter.ActiveOnly {
		query["status"] = domain.StatusActive
	}
	price := bson.M{}
	if filter.MinPrice > 0 {
		price["$gte"] = filter.MinPrice
	}
	if filter.MaxPrice > 0 {
		price["$lte"] = filter.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}
	if filter.Query != "" {
		query["$text"] = bson.M{"$search": filter.Query}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		r.logger.Error("Find failed", "error", err.Error())
		return nil, err
	}
	var docs []*listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	listings := make([]*domain.Listing, 0, len(docs))
	for _, doc := range docs {
		listings = append(listings, toDomainListing(doc))
	}
	return listings, nil
}

func (r *ListingRepository) UpdateStatus(ctx context.Context, id string, status domain.ListingStatus) error {
	res, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		r.logger.Error("UpdateByID failed", "listing_id", id, "error", err.Error())
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) CountByOwner(ctx context.Context, ownerID string) (total, active int64, err error) {
	total, err = r.collection.CountDocuments(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return 0, 0, err
	}
	active, err = r.collection.CountDocuments(ctx, bson.M{"owner_id": ownerID, "status": domain.StatusActive})
	if err != nil {
		return 0, 0, err
	}
	return total, active, nil
}
