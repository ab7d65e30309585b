package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/animalmarket/listing-service/internal/listing/domain"
	"github.com/animalmarket/listing-service/internal/platform/logger"
)

var tracer = otel.Tracer("listing-service/usecase")

// SessionReader reports the current actor. Owner-scoped operations refuse to
// run while the session is guest.
type SessionReader interface {
	Current() (*domain.UserProfile, bool)
}

// Publisher emits domain events for interested services.
type Publisher interface {
	PublishListingCreated(ctx context.Context, listing *domain.Listing) error
	PublishListingStatusChanged(ctx context.Context, listing *domain.Listing) error
}

// ListingCache is a read-through cache keyed by listing id.
type ListingCache interface {
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	SetListing(ctx context.Context, listing *domain.Listing) error
	DeleteListing(ctx context.Context, id string) error
}

// Mailer notifies an owner that their listing went live.
type Mailer interface {
	SendListingCreated(toEmail, listingName string) error
}

// ListingUsecase is the canonical write and read path for listings.
type ListingUsecase struct {
	repo      domain.ListingRepository
	sessions  SessionReader
	cache     ListingCache // optional
	publisher Publisher    // optional
	mailer    Mailer       // optional
	logger    *logger.Logger
}

func NewListingUsecase(
	repo domain.ListingRepository,
	sessions SessionReader,
	cache ListingCache,
	publisher Publisher,
	mailer Mailer,
	log *logger.Logger,
) *ListingUsecase {
	return &ListingUsecase{
		repo:      repo,
		sessions:  sessions,
		cache:     cache,
		publisher: publisher,
		mailer:    mailer,
		logger:    log.Named("ListingUsecase"),
	}
}

// Create validates the draft and stores it as a new active listing owned by
// the current user. Nothing is written when validation fails.
func (uc *ListingUsecase) Create(ctx context.Context, draft domain.Draft) (*domain.Listing, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.Create")
	defer span.End()

	owner, ok := uc.sessions.Current()
	if !ok {
		uc.logger.Warn("create rejected for guest session")
		return nil, domain.ErrUnauthorized
	}
	span.SetAttributes(attribute.String("owner_id", owner.ID))

	if err := draft.Validate(); err != nil {
		uc.logger.Info("draft failed validation", "owner_id", owner.ID, "error", err.Error())
		return nil, err
	}

	listing := &domain.Listing{
		ID:          uuid.NewString(),
		OwnerID:     owner.ID,
		Name:        strings.TrimSpace(draft.Name),
		Species:     domain.Species(strings.TrimSpace(draft.Species)),
		Age:         strings.TrimSpace(draft.Age),
		Gender:      strings.TrimSpace(draft.Gender),
		Price:       draft.PriceValue(),
		Description: strings.TrimSpace(draft.Description),
		Location:    strings.TrimSpace(draft.Location),
		Phone:       strings.TrimSpace(draft.Phone),
		Photos:      append([]domain.PhotoRef(nil), draft.Photos...),
		Status:      domain.StatusActive,
		CreatedAt:   time.Now().UTC(),
	}

	if err := uc.repo.Create(ctx, listing); err != nil {
		uc.logger.Error("failed to store listing", "owner_id", owner.ID, "error", err.Error())
		span.RecordError(err)
		return nil, err
	}
	uc.logger.Info("listing created", "listing_id", listing.ID, "owner_id", owner.ID, "species", string(listing.Species))

	// Eventing and email are best-effort; the listing is already durable.
	if uc.publisher != nil {
		if err := uc.publisher.PublishListingCreated(ctx, listing); err != nil {
			uc.logger.Warn("failed to publish listing.created", "listing_id", listing.ID, "error", err.Error())
		}
	}
	if uc.mailer != nil && owner.Email != "" {
		if err := uc.mailer.SendListingCreated(owner.Email, listing.Name); err != nil {
			uc.logger.Warn("failed to send listing-created email", "listing_id", listing.ID, "error", err.Error())
		}
	}

	return listing, nil
}

// Get returns a listing by id, consulting the cache first.
func (uc *ListingUsecase) Get(ctx context.Context, id string) (*domain.Listing, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.Get")
	defer span.End()

	if uc.cache != nil {
		cached, err := uc.cache.GetListing(ctx, id)
		if err != nil {
			uc.logger.Warn("cache lookup failed", "listing_id", id, "error", err.Error())
		} else if cached != nil {
			return cached, nil
		}
	}

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetListing(ctx, listing); err != nil {
			uc.logger.Warn("cache store failed", "listing_id", id, "error", err.Error())
		}
	}
	return listing, nil
}

// List returns listings matching the filter, most-recent-first. An empty
// result is not an error.
func (uc *ListingUsecase) List(ctx context.Context, filter domain.Filter) ([]*domain.Listing, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.List")
	defer span.End()
	return uc.repo.FindByFilter(ctx, filter)
}

// MyListings returns all listings owned by the current user.
func (uc *ListingUsecase) MyListings(ctx context.Context) ([]*domain.Listing, error) {
	owner, ok := uc.sessions.Current()
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return uc.repo.FindByFilter(ctx, domain.Filter{OwnerID: owner.ID})
}

// SetActive flips the only mutable bit of a persisted listing. Only the owner
// may change it.
func (uc *ListingUsecase) SetActive(ctx context.Context, id string, active bool) error {
	ctx, span := tracer.Start(ctx, "ListingUsecase.SetActive")
	defer span.End()
	span.SetAttributes(attribute.String("listing_id", id), attribute.Bool("active", active))

	owner, ok := uc.sessions.Current()
	if !ok {
		return domain.ErrUnauthorized
	}

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if listing.OwnerID != owner.ID {
		uc.logger.Warn("status change refused", "listing_id", id, "owner_id", listing.OwnerID, "actor_id", owner.ID)
		return domain.ErrForbidden
	}

	status := domain.StatusInactive
	if active {
		status = domain.StatusActive
	}
	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		uc.logger.Error("failed to update listing status", "listing_id", id, "error", err.Error())
		return err
	}
	listing.Status = status

	if uc.cache != nil {
		if err := uc.cache.DeleteListing(ctx, id); err != nil {
			uc.logger.Warn("cache invalidation failed", "listing_id", id, "error", err.Error())
		}
	}
	if uc.publisher != nil {
		if err := uc.publisher.PublishListingStatusChanged(ctx, listing); err != nil {
			uc.logger.Warn("failed to publish listing.status_changed", "listing_id", id, "error", err.Error())
		}
	}
	return nil
}
