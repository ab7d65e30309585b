package httpapi

import (
	"github.com/go-chi/chi/v5"

	"github.com/animalmarket/listing-service/internal/platform/logger"
)

// NewRouter wires all routes. Browsing is public; owner-scoped routes sit
// behind JWTAuth.
func NewRouter(h *Handler, verifier TokenVerifier, log *logger.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(RequestLogger(log))

	// Public: anyone may browse.
	r.Post("/api/user/register", h.Register)
	r.Post("/api/user/login", h.Login)
	r.Get("/api/feed", h.RecentFeed)
	r.Get("/api/listings", h.SearchListings)
	r.Get("/api/listings/{id}", h.GetListing)

	// Owner-scoped: requires an authenticated session.
	r.Group(func(auth chi.Router) {
		auth.Use(JWTAuth(verifier, log))

		auth.Post("/api/user/logout", h.Logout)
		auth.Get("/api/user/profile", h.Profile)

		auth.Post("/api/listings", h.CreateListing)
		auth.Get("/api/my/listings", h.MyListings)
		auth.Patch("/api/listings/{id}/status", h.SetListingStatus)

		auth.Get("/api/draft/photos", h.DraftPhotos)
		auth.Post("/api/draft/photos", h.AttachDraftPhoto)
		auth.Delete("/api/draft/photos/{index}", h.RemoveDraftPhoto)
		auth.Delete("/api/draft/photos", h.ClearDraftPhotos)

		auth.Get("/api/favorites", h.ListFavorites)
		auth.Post("/api/favorites", h.AddFavorite)
		auth.Delete("/api/favorites", h.RemoveFavorite)
	})

	return r
}
