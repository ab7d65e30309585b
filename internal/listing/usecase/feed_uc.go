package usecase

import (
	"context"

	"github.com/animalmarket/listing-service/internal/listing/domain"
	"github.com/animalmarket/listing-service/internal/platform/logger"
)

// FeedUsecase is the read-side projector: it derives feed views and per-user
// statistics from the store on every call and keeps no state of its own.
type FeedUsecase struct {
	repo      domain.ListingRepository
	favorites domain.FavoriteRepository
	logger    *logger.Logger
}

func NewFeedUsecase(repo domain.ListingRepository, favorites domain.FavoriteRepository, log *logger.Logger) *FeedUsecase {
	return &FeedUsecase{
		repo:      repo,
		favorites: favorites,
		logger:    log.Named("FeedUsecase"),
	}
}

// RecentFeed returns the newest active listings, most-recent-first, capped at
// limit.
func (uc *FeedUsecase) RecentFeed(ctx context.Context, limit int) ([]*domain.Listing, error) {
	listings, err := uc.repo.FindByFilter(ctx, domain.Filter{ActiveOnly: true, Limit: limit})
	if err != nil {
		uc.logger.Error("failed to build recent feed", "limit", limit, "error", err.Error())
		return nil, err
	}
	return listings, nil
}

// StatsFor derives the listing and favorite counts for a profile.
func (uc *FeedUsecase) StatsFor(ctx context.Context, profile *domain.UserProfile) (domain.Stats, error) {
	total, active, err := uc.repo.CountByOwner(ctx, profile.ID)
	if err != nil {
		uc.logger.Error("failed to count listings", "user_id", profile.ID, "error", err.Error())
		return domain.Stats{}, err
	}

	var favorites int64
	if uc.favorites != nil {
		favorites, err = uc.favorites.CountByUserID(ctx, profile.ID)
		if err != nil {
			uc.logger.Error("failed to count favorites", "user_id", profile.ID, "error", err.Error())
			return domain.Stats{}, err
		}
	}

	return domain.Stats{Total: total, Active: active, Favorites: favorites}, nil
}
