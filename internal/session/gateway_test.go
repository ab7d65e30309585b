package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/animalmarket/listing-service/internal/listing/domain"
	"github.com/animalmarket/listing-service/internal/platform/logger"
)

type MockIdentityProvider struct{ mock.Mock }

func (m *MockIdentityProvider) Authenticate(ctx context.Context, email, password string) (*domain.UserProfile, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func newTestGateway(provider IdentityProvider) *Gateway {
	return NewGateway(provider, nil, "test-secret", logger.NewNop())
}

func TestGateway_InitialStateIsGuest(t *testing.T) {
	g := newTestGateway(new(MockIdentityProvider))
	_, ok := g.Current()
	assert.False(t, ok)
}

func TestGateway_LoginSuccess(t *testing.T) {
	provider := new(MockIdentityProvider)
	provider.On("Authenticate", mock.Anything, "a@b.c", "secret").
		Return(&domain.UserProfile{ID: "user-1", Email: "a@b.c"}, nil)

	g := newTestGateway(provider)
	profile, token, err := g.Login(context.Background(), Credentials{Email: "a@b.c", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "user-1", profile.ID)
	assert.NotEmpty(t, token)

	current, ok := g.Current()
	require.True(t, ok)
	assert.Equal(t, "user-1", current.ID)
}

func TestGateway_LoginFailureKeepsGuest(t *testing.T) {
	provider := new(MockIdentityProvider)
	provider.On("Authenticate", mock.Anything, "a@b.c", "wrong").
		Return(nil, domain.ErrInvalidCredentials)

	g := newTestGateway(provider)
	_, _, err := g.Login(context.Background(), Credentials{Email: "a@b.c", Password: "wrong"})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, ok := g.Current()
	assert.False(t, ok)
}

func TestGateway_LogoutIsIdempotent(t *testing.T) {
	provider := new(MockIdentityProvider)
	provider.On("Authenticate", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.UserProfile{ID: "user-1"}, nil)

	g := newTestGateway(provider)
	_, _, err := g.Login(context.Background(), Credentials{Email: "a@b.c", Password: "secret"})
	require.NoError(t, err)

	g.Logout(context.Background())
	_, ok := g.Current()
	assert.False(t, ok)

	// A second logout while guest is a no-op.
	g.Logout(context.Background())
	_, ok = g.Current()
	assert.False(t, ok)
}

func TestGateway_TokenRoundTrip(t *testing.T) {
	provider := new(MockIdentityProvider)
	provider.On("Authenticate", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.UserProfile{ID: "user-1"}, nil)

	g := newTestGateway(provider)
	_, token, err := g.Login(context.Background(), Credentials{Email: "a@b.c", Password: "secret"})
	require.NoError(t, err)

	userID, err := g.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestGateway_VerifyToken_Garbage(t *testing.T) {
	g := newTestGateway(new(MockIdentityProvider))
	_, err := g.VerifyToken("not-a-token")
	assert.Error(t, err)
}

func TestGateway_VerifyToken_WrongSecret(t *testing.T) {
	provider := new(MockIdentityProvider)
	provider.On("Authenticate", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.UserProfile{ID: "user-1"}, nil)

	issuer := NewGateway(provider, nil, "secret-a", logger.NewNop())
	_, token, err := issuer.Login(context.Background(), Credentials{Email: "a@b.c", Password: "secret"})
	require.NoError(t, err)

	verifier := NewGateway(provider, nil, "secret-b", logger.NewNop())
	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}
