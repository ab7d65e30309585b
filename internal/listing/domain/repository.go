package domain

import "context"

type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	FindByFilter(ctx context.Context, filter Filter) ([]*Listing, error)
	UpdateStatus(ctx context.Context, id string, status ListingStatus) error
	CountByOwner(ctx context.Context, ownerID string) (total, active int64, err error)
}

type FavoriteRepository interface {
	Add(ctx context.Context, favorite *Favorite) error
	Remove(ctx context.Context, userID, listingID string) error
	FindByUserID(ctx context.Context, userID string) ([]*Favorite, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
}
