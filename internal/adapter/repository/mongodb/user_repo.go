package mongodb

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/animalmarket/listing-service/internal/listing/domain"
	"github.com/animalmarket/listing-service/internal/platform/logger"
)

// UserRepository is the durable identity provider: registration hashes the
// password with bcrypt, Authenticate compares against the stored hash.
type UserRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewUserRepository(db *mongo.Database, log *logger.Logger) *UserRepository {
	repo := &UserRepository{
		collection: db.Collection("users"),
		logger:     log.Named("UserRepository"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		repo.logger.Warn("failed to ensure users email index", "error", err.Error())
	}
	return repo
}

func (r *UserRepository) Register(ctx context.Context, profile *domain.UserProfile, password string) (*domain.UserProfile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		r.logger.Error("failed to hash password", "email", profile.Email, "error", err.Error())
		return nil, err
	}

	doc := &userDocument{
		ID:           profile.ID,
		DisplayName:  profile.DisplayName,
		Email:        strings.ToLower(strings.TrimSpace(profile.Email)),
		Phone:        profile.Phone,
		Location:     profile.Location,
		Photo:        string(profile.Photo),
		PasswordHash: string(hash),
		JoinedAt:     profile.JoinedAt,
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.JoinedAt.IsZero() {
		doc.JoinedAt = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		r.logger.Error("InsertOne failed", "email", doc.Email, "error", err.Error())
		return nil, err
	}
	return toDomainProfile(doc), nil
}

func (r *UserRepository) Authenticate(ctx context.Context, email, password string) (*domain.UserProfile, error) {
	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidCredentials
		}
		r.logger.Error("FindOne failed", "email", email, "error", err.Error())
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doc.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return toDomainProfile(&doc), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return toDomainProfile(&doc), nil
}
