package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animalmarket/listing-service/internal/listing/domain"
)

func TestUserRepository_RegisterAndAuthenticate(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	profile, err := repo.Register(ctx, &domain.UserProfile{
		DisplayName: "Demo",
		Email:       "Demo@Example.com",
	}, "secret-password")
	require.NoError(t, err)
	assert.NotEmpty(t, profile.ID)
	assert.False(t, profile.JoinedAt.IsZero())

	// Email matching is case-insensitive.
	authed, err := repo.Authenticate(ctx, "demo@example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, authed.ID)
}

func TestUserRepository_AuthenticateFailures(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	_, err := repo.Register(ctx, &domain.UserProfile{Email: "a@b.c"}, "right-password")
	require.NoError(t, err)

	_, err = repo.Authenticate(ctx, "a@b.c", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = repo.Authenticate(ctx, "nobody@b.c", "right-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	_, err := repo.Register(ctx, &domain.UserProfile{Email: "a@b.c"}, "pw")
	require.NoError(t, err)

	_, err = repo.Register(ctx, &domain.UserProfile{Email: "A@B.C"}, "pw")
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestFavoriteRepository_AddRemoveCount(t *testing.T) {
	repo := NewFavoriteRepository()
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, &domain.Favorite{UserID: "u1", ListingID: "l1"}))
	require.NoError(t, repo.Add(ctx, &domain.Favorite{UserID: "u1", ListingID: "l2"}))

	err := repo.Add(ctx, &domain.Favorite{UserID: "u1", ListingID: "l1"})
	assert.ErrorIs(t, err, domain.ErrDuplicateFavorite)

	count, err := repo.CountByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.Remove(ctx, "u1", "l1"))
	assert.ErrorIs(t, repo.Remove(ctx, "u1", "l1"), domain.ErrFavoriteNotFound)

	favorites, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "l2", favorites[0].ListingID)
}
