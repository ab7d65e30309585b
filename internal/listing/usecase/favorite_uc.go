package usecase

import (
	"context"
	"time"

	"github.com/animalmarket/listing-service/internal/listing/domain"
	"github.com/animalmarket/listing-service/internal/platform/logger"
)

type FavoriteUsecase struct {
	repo     domain.FavoriteRepository
	listings domain.ListingRepository
	sessions SessionReader
	logger   *logger.Logger
}

func NewFavoriteUsecase(repo domain.FavoriteRepository, listings domain.ListingRepository, sessions SessionReader, log *logger.Logger) *FavoriteUsecase {
	return &FavoriteUsecase{
		repo:     repo,
		listings: listings,
		sessions: sessions,
		logger:   log.Named("FavoriteUsecase"),
	}
}

func (uc *FavoriteUsecase) Add(ctx context.Context, listingID string) error {
	user, ok := uc.sessions.Current()
	if !ok {
		return domain.ErrUnauthorized
	}

	// Favoriting a listing that does not exist is a NotFound, not a silent add.
	if _, err := uc.listings.FindByID(ctx, listingID); err != nil {
		return err
	}

	favorite := &domain.Favorite{
		UserID:    user.ID,
		ListingID: listingID,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Add(ctx, favorite); err != nil {
		uc.logger.Warn("failed to add favorite", "user_id", user.ID, "listing_id", listingID, "error", err.Error())
		return err
	}
	uc.logger.Info("favorite added", "user_id", user.ID, "listing_id", listingID)
	return nil
}

func (uc *FavoriteUsecase) Remove(ctx context.Context, listingID string) error {
	user, ok := uc.sessions.Current()
	if !ok {
		return domain.ErrUnauthorized
	}
	if err := uc.repo.Remove(ctx, user.ID, listingID); err != nil {
		uc.logger.Warn("failed to remove favorite", "user_id", user.ID, "listing_id", listingID, "error", err.Error())
		return err
	}
	return nil
}

func (uc *FavoriteUsecase) ListMine(ctx context.Context) ([]*domain.Favorite, error) {
	user, ok := uc.sessions.Current()
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return uc.repo.FindByUserID(ctx, user.ID)
}
