package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/animalmarket/listing-service/internal/listing/domain"
)

type userRecord struct {
	profile      domain.UserProfile
	passwordHash []byte
}

// UserRepository is the in-process identity provider: it registers users with
// bcrypt-hashed passwords and authenticates credentials against them.
type UserRepository struct {
	mu      sync.Mutex
	byEmail map[string]*userRecord
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byEmail: make(map[string]*userRecord)}
}

func (r *UserRepository) Register(_ context.Context, profile *domain.UserProfile, password string) (*domain.UserProfile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	email := normalizeEmail(profile.Email)
	if _, exists := r.byEmail[email]; exists {
		return nil, domain.ErrDuplicateEmail
	}

	stored := *profile
	stored.Email = email
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.JoinedAt.IsZero() {
		stored.JoinedAt = time.Now().UTC()
	}
	r.byEmail[email] = &userRecord{profile: stored, passwordHash: hash}

	out := stored
	return &out, nil
}

func (r *UserRepository) Authenticate(_ context.Context, email, password string) (*domain.UserProfile, error) {
	r.mu.Lock()
	record, ok := r.byEmail[normalizeEmail(email)]
	r.mu.Unlock()
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(record.passwordHash, []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	profile := record.profile
	return &profile, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.byEmail {
		if record.profile.ID == id {
			profile := record.profile
			return &profile, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
