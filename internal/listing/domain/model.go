package domain

import "time"

type ListingStatus string

const (
	StatusActive   ListingStatus = "active"
	StatusInactive ListingStatus = "inactive"
)

// Species is the closed set of animal kinds a listing can advertise.
type Species string

const (
	SpeciesCattle  Species = "cattle"
	SpeciesSheep   Species = "sheep"
	SpeciesGoat    Species = "goat"
	SpeciesChicken Species = "chicken"
	SpeciesHorse   Species = "horse"
	SpeciesDuck    Species = "duck"
	SpeciesGoose   Species = "goose"
	SpeciesTurkey  Species = "turkey"
	SpeciesOther   Species = "other"
)

// AllSpecies lists every accepted species in display order.
var AllSpecies = []Species{
	SpeciesCattle, SpeciesSheep, SpeciesGoat, SpeciesChicken,
	SpeciesHorse, SpeciesDuck, SpeciesGoose, SpeciesTurkey, SpeciesOther,
}

func (s Species) Valid() bool {
	for _, known := range AllSpecies {
		if s == known {
			return true
		}
	}
	return false
}

// Emoji returns the glyph shown next to the species in feeds and
// quick-access tiles.
func (s Species) Emoji() string {
	switch s {
	case SpeciesCattle:
		return "🐄"
	case SpeciesSheep:
		return "🐑"
	case SpeciesGoat:
		return "🐐"
	case SpeciesChicken:
		return "🐔"
	case SpeciesHorse:
		return "🐴"
	case SpeciesDuck:
		return "🦆"
	case SpeciesGoose:
		return "🪿"
	case SpeciesTurkey:
		return "🦃"
	default:
		return "🐾"
	}
}

// PhotoRef is an opaque reference to externally stored media. The core only
// stores and counts references, never bytes.
type PhotoRef string

// MaxListingPhotos bounds how many photos a listing (and the draft that
// produced it) may carry.
const MaxListingPhotos = 5

// Listing is immutable once persisted except for its status flag; corrections
// require creating a new listing.
type Listing struct {
	ID          string
	OwnerID     string
	Name        string
	Species     Species
	Age         string
	Gender      string
	Price       float64
	Description string
	Location    string
	Phone       string
	Photos      []PhotoRef
	Status      ListingStatus
	CreatedAt   time.Time
}

func (l *Listing) Active() bool {
	return l.Status == StatusActive
}

type UserProfile struct {
	ID          string
	DisplayName string
	Email       string
	Phone       string
	Location    string
	Photo       PhotoRef
	JoinedAt    time.Time
}

// Stats is derived by the feed projector on read, never stored.
type Stats struct {
	Total     int64
	Active    int64
	Favorites int64
}

type Favorite struct {
	ID        string
	UserID    string
	ListingID string
	CreatedAt time.Time
}

// Filter narrows listing queries. Zero values mean "no constraint".
// Results are always most-recent-first.
type Filter struct {
	OwnerID    string
	Species    Species
	ActiveOnly bool
	MinPrice   float64
	MaxPrice   float64
	Query      string
	Limit      int
}
