// Package session tracks the current actor and gates owner-scoped operations.
// The process holds a single session that is either guest or authenticated;
// transitions happen only through Login and Logout.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/animalmarket/listing-service/internal/listing/domain"
	"github.com/animalmarket/listing-service/internal/platform/logger"
)

type Credentials struct {
	Email    string
	Password string
}

// IdentityProvider validates credentials and resolves the matching profile.
// The gateway treats it as a black box returning success or failure.
type IdentityProvider interface {
	Authenticate(ctx context.Context, email, password string) (*domain.UserProfile, error)
}

// TokenCache mirrors the user-service pattern of keeping the active session
// token per user in Redis so other services can check it.
type TokenCache interface {
	CacheToken(ctx context.Context, userID, token string, ttl time.Duration) error
	InvalidateToken(ctx context.Context, userID string) error
}

type Gateway struct {
	provider  IdentityProvider
	tokens    TokenCache // optional
	jwtSecret string
	logger    *logger.Logger

	mu      sync.Mutex
	current *domain.UserProfile
}

func NewGateway(provider IdentityProvider, tokens TokenCache, jwtSecret string, log *logger.Logger) *Gateway {
	return &Gateway{
		provider:  provider,
		tokens:    tokens,
		jwtSecret: jwtSecret,
		logger:    log.Named("SessionGateway"),
	}
}

// Login transitions the session to authenticated and returns the profile plus
// a signed session token. The session state is untouched on failure.
func (g *Gateway) Login(ctx context.Context, creds Credentials) (*domain.UserProfile, string, error) {
	profile, err := g.provider.Authenticate(ctx, creds.Email, creds.Password)
	if err != nil {
		g.logger.Warn("login failed", "email", creds.Email, "error", err.Error())
		return nil, "", err
	}

	token, err := g.issueToken(profile.ID)
	if err != nil {
		g.logger.Error("failed to issue session token", "user_id", profile.ID, "error", err.Error())
		return nil, "", fmt.Errorf("issue session token: %w", err)
	}

	if g.tokens != nil {
		if err := g.tokens.CacheToken(ctx, profile.ID, token, tokenTTL); err != nil {
			// The signed token is still verifiable without the cache.
			g.logger.Warn("failed to cache session token", "user_id", profile.ID, "error", err.Error())
		}
	}

	g.mu.Lock()
	g.current = profile
	g.mu.Unlock()

	g.logger.Info("user logged in", "user_id", profile.ID)
	return profile, token, nil
}

// Logout returns the session to guest. It is idempotent: logging out a guest
// session is a no-op.
func (g *Gateway) Logout(ctx context.Context) {
	g.mu.Lock()
	previous := g.current
	g.current = nil
	g.mu.Unlock()

	if previous == nil {
		return
	}
	if g.tokens != nil {
		if err := g.tokens.InvalidateToken(ctx, previous.ID); err != nil {
			g.logger.Warn("failed to invalidate session token", "user_id", previous.ID, "error", err.Error())
		}
	}
	g.logger.Info("user logged out", "user_id", previous.ID)
}

// Current returns the authenticated profile, or false while guest.
func (g *Gateway) Current() (*domain.UserProfile, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current == nil {
		return nil, false
	}
	return g.current, true
}
