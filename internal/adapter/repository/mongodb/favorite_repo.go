package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/animalmarket/listing-service/internal/listing/domain"
	"github.com/animalmarket/listing-service/internal/platform/logger"
)

type FavoriteRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewFavoriteRepository(db *mongo.Database, log *logger.Logger) *FavoriteRepository {
	repo := &FavoriteRepository{
		collection: db.Collection("favorites"),
		logger:     log.Named("FavoriteRepository"),
	}

	// The duplicate-favorite check relies on this unique index.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "listing_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		repo.logger.Warn("failed to ensure favorites index", "error", err.Error())
	}
	return repo
}

func (r *FavoriteRepository) Add(ctx context.Context, favorite *domain.Favorite) error {
	doc := &favoriteDocument{
		UserID:    favorite.UserID,
		ListingID: favorite.ListingID,
		CreatedAt: favorite.CreatedAt,
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateFavorite
		}
		r.logger.Error("InsertOne failed", "user_id", favorite.UserID, "listing_id", favorite.ListingID, "error", err.Error())
		return err
	}
	if oid, ok := res.InsertedID.(interface{ Hex() string }); ok {
		favorite.ID = oid.Hex()
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, listingID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "listing_id": listingID})
	if err != nil {
		r.logger.Error("DeleteOne failed", "user_id", userID, "listing_id", listingID, "error", err.Error())
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

func (r *FavoriteRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []*domain.Favorite{}, nil
		}
		r.logger.Error("Find failed", "user_id", userID, "error", err.Error())
		return nil, err
	}
	var docs []*favoriteDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	favorites := make([]*domain.Favorite, 0, len(docs))
	for _, doc := range docs {
		favorites = append(favorites, toDomainFavorite(doc))
	}
	return favorites, nil
}

func (r *FavoriteRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
}
