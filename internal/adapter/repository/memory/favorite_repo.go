package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/animalmarket/listing-service/internal/listing/domain"
)

type FavoriteRepository struct {
	mu        sync.Mutex
	favorites []*domain.Favorite
}

func NewFavoriteRepository() *FavoriteRepository {
	return &FavoriteRepository{}
}

func (r *FavoriteRepository) Add(_ context.Context, favorite *domain.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.favorites {
		if f.UserID == favorite.UserID && f.ListingID == favorite.ListingID {
			return domain.ErrDuplicateFavorite
		}
	}
	stored := *favorite
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.favorites = append(r.favorites, &stored)
	favorite.ID = stored.ID
	return nil
}

func (r *FavoriteRepository) Remove(_ context.Context, userID, listingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, f := range r.favorites {
		if f.UserID == userID && f.ListingID == listingID {
			r.favorites = append(r.favorites[:i], r.favorites[i+1:]...)
			return nil
		}
	}
	return domain.ErrFavoriteNotFound
}

func (r *FavoriteRepository) FindByUserID(_ context.Context, userID string) ([]*domain.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*domain.Favorite, 0)
	for _, f := range r.favorites {
		if f.UserID == userID {
			c := *f
			result = append(result, &c)
		}
	}
	return result, nil
}

func (r *FavoriteRepository) CountByUserID(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, f := range r.favorites {
		if f.UserID == userID {
			n++
		}
	}
	return n, nil
}
