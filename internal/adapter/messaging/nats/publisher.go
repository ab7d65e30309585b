package nats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/animalmarket/listing-service/internal/listing/domain"
)

const (
	SubjectListingCreated       = "listing.created"
	SubjectListingStatusChanged = "listing.status_changed"
)

// ListingEvent is the payload other services receive when a listing changes.
type ListingEvent struct {
	ListingID  string    `json:"listing_id"`
	OwnerID    string    `json:"owner_id"`
	Name       string    `json:"name"`
	Species    string    `json:"species"`
	Status     string    `json:"status"`
	Price      float64   `json:"price"`
	Location   string    `json:"location"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn}, nil
}

func (p *Publisher) PublishListingCreated(ctx context.Context, listing *domain.Listing) error {
	return p.publish(SubjectListingCreated, listing)
}

func (p *Publisher) PublishListingStatusChanged(ctx context.Context, listing *domain.Listing) error {
	return p.publish(SubjectListingStatusChanged, listing)
}

func (p *Publisher) publish(subject string, listing *domain.Listing) error {
	event := ListingEvent{
		ListingID:  listing.ID,
		OwnerID:    listing.OwnerID,
		Name:       listing.Name,
		Species:    string(listing.Species),
		Status:     string(listing.Status),
		Price:      listing.Price,
		Location:   listing.Location,
		OccurredAt: time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.conn.Publish(subject, data)
}

func (p *Publisher) Close() {
	p.conn.Close()
}
