package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animalmarket/listing-service/internal/listing/domain"
)

func storedListing(id, owner string, species domain.Species, price float64, createdAt time.Time) *domain.Listing {
	return &domain.Listing{
		ID:        id,
		OwnerID:   owner,
		Name:      "name-" + id,
		Species:   species,
		Price:     price,
		Status:    domain.StatusActive,
		CreatedAt: createdAt,
	}
}

func TestListingRepository_FindByFilter_MostRecentFirst(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()
	base := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, storedListing("first", "u1", domain.SpeciesCattle, 100, base)))
	require.NoError(t, repo.Create(ctx, storedListing("second", "u1", domain.SpeciesSheep, 200, base.Add(time.Second))))
	require.NoError(t, repo.Create(ctx, storedListing("third", "u2", domain.SpeciesGoat, 300, base.Add(2*time.Second))))

	listings, err := repo.FindByFilter(ctx, domain.Filter{})
	require.NoError(t, err)
	require.Len(t, listings, 3)
	assert.Equal(t, "third", listings[0].ID)
	assert.Equal(t, "second", listings[1].ID)
	assert.Equal(t, "first", listings[2].ID)
}

func TestListingRepository_FindByFilter_Limit(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, storedListing(id, "u1", domain.SpeciesCattle, 100, time.Now())))
	}

	listings, err := repo.FindByFilter(ctx, domain.Filter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, listings, 2)
	assert.Equal(t, "c", listings[0].ID)
}

func TestListingRepository_FindByFilter_Fields(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, storedListing("cow", "u1", domain.SpeciesCattle, 25000, time.Now())))
	require.NoError(t, repo.Create(ctx, storedListing("sheep", "u2", domain.SpeciesSheep, 4500, time.Now())))
	require.NoError(t, repo.UpdateStatus(ctx, "sheep", domain.StatusInactive))

	bySpecies, err := repo.FindByFilter(ctx, domain.Filter{Species: domain.SpeciesCattle})
	require.NoError(t, err)
	require.Len(t, bySpecies, 1)
	assert.Equal(t, "cow", bySpecies[0].ID)

	activeOnly, err := repo.FindByFilter(ctx, domain.Filter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, activeOnly, 1)
	assert.Equal(t, "cow", activeOnly[0].ID)

	byPrice, err := repo.FindByFilter(ctx, domain.Filter{MinPrice: 5000})
	require.NoError(t, err)
	require.Len(t, byPrice, 1)
	assert.Equal(t, "cow", byPrice[0].ID)

	byOwner, err := repo.FindByFilter(ctx, domain.Filter{OwnerID: "u2"})
	require.NoError(t, err)
	require.Len(t, byOwner, 1)
	assert.Equal(t, "sheep", byOwner[0].ID)
}

func TestListingRepository_FindByID(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, storedListing("cow", "u1", domain.SpeciesCattle, 25000, time.Now())))

	found, err := repo.FindByID(ctx, "cow")
	require.NoError(t, err)
	assert.Equal(t, "cow", found.ID)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestListingRepository_FindByID_ReturnsCopy(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, storedListing("cow", "u1", domain.SpeciesCattle, 25000, time.Now())))

	found, err := repo.FindByID(ctx, "cow")
	require.NoError(t, err)
	found.Name = "mutated"

	again, err := repo.FindByID(ctx, "cow")
	require.NoError(t, err)
	assert.Equal(t, "name-cow", again.Name)
}

func TestListingRepository_UpdateStatus(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, storedListing("cow", "u1", domain.SpeciesCattle, 25000, time.Now())))

	require.NoError(t, repo.UpdateStatus(ctx, "cow", domain.StatusInactive))
	found, err := repo.FindByID(ctx, "cow")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInactive, found.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", domain.StatusActive), domain.ErrListingNotFound)
}

func TestListingRepository_CountByOwner(t *testing.T) {
	repo := NewListingRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, storedListing("a", "u1", domain.SpeciesCattle, 100, time.Now())))
	require.NoError(t, repo.Create(ctx, storedListing("b", "u1", domain.SpeciesSheep, 200, time.Now())))
	require.NoError(t, repo.Create(ctx, storedListing("c", "u2", domain.SpeciesGoat, 300, time.Now())))
	require.NoError(t, repo.UpdateStatus(ctx, "b", domain.StatusInactive))

	total, active, err := repo.CountByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, int64(1), active)
}
