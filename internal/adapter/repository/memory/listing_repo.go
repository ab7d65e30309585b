// Package memory holds mutex-guarded in-process repositories. They back
// single-process deployments and tests; the mongodb package is the durable
// equivalent.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/animalmarket/listing-service/internal/listing/domain"
)

// ListingRepository keeps listings in insertion order under a single mutex so
// create/get/list/status operations are linearizable.
type ListingRepository struct {
	mu    sync.Mutex
	byID  map[string]*domain.Listing
	order []string // ids in creation order, oldest first
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{byID: make(map[string]*domain.Listing)}
}

func (r *ListingRepository) Create(_ context.Context, listing *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := cloneListing(listing)
	r.byID[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return nil
}

func (r *ListingRepository) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	listing, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return cloneListing(listing), nil
}

func (r *ListingRepository) FindByFilter(_ context.Context, filter domain.Filter) ([]*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Listing, 0)
	for i := len(r.order) - 1; i >= 0; i-- { // newest first
		listing := r.byID[r.order[i]]
		if !matches(listing, filter) {
			continue
		}
		result = append(result, cloneListing(listing))
		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}
	return result, nil
}

func (r *ListingRepository) UpdateStatus(_ context.Context, id string, status domain.ListingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	listing, ok := r.byID[id]
	if !ok {
		return domain.ErrListingNotFound
	}
	listing.Status = status
	return nil
}

func (r *ListingRepository) CountByOwner(_ context.Context, ownerID string) (total, active int64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, listing := range r.byID {
		if listing.OwnerID != ownerID {
			continue
		}
		total++
		if listing.Status == domain.StatusActive {
			active++
		}
	}
	return total, active, nil
}

func matches(l *domain.Listing, f domain.Filter) bool {
	if f.OwnerID != "" && l.OwnerID != f.OwnerID {
		return false
	}
	if f.Species != "" && l.Species != f.Species {
		return false
	}
	if f.ActiveOnly && l.Status != domain.StatusActive {
		return false
	}
	if f.MinPrice > 0 && l.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && l.Price > f.MaxPrice {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(l.Name), q) &&
			!strings.Contains(strings.ToLower(l.Description), q) &&
			!strings.Contains(strings.ToLower(l.Location), q) {
			return false
		}
	}
	return true
}

func cloneListing(l *domain.Listing) *domain.Listing {
	c := *l
	c.Photos = append([]domain.PhotoRef(nil), l.Photos...)
	return &c
}
