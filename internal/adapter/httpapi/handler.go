package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/animalmarket/listing-service/internal/listing/domain"
	"github.com/animalmarket/listing-service/internal/listing/usecase"
	"github.com/animalmarket/listing-service/internal/platform/logger"
	"github.com/animalmarket/listing-service/internal/session"
)

const defaultFeedLimit = 20

// maxPhotoUploadBytes bounds a single photo upload body.
const maxPhotoUploadBytes = 10 << 20

// Registrar creates a new user account for the identity provider.
type Registrar interface {
	Register(ctx context.Context, profile *domain.UserProfile, password string) (*domain.UserProfile, error)
}

type Handler struct {
	gateway   *session.Gateway
	registrar Registrar
	listings  *usecase.ListingUsecase
	feed      *usecase.FeedUsecase
	favorites *usecase.FavoriteUsecase
	photos    *usecase.PhotoUsecase
	draft     *usecase.DraftAttachments
	logger    *logger.Logger
}

func NewHandler(
	gateway *session.Gateway,
	registrar Registrar,
	listings *usecase.ListingUsecase,
	feed *usecase.FeedUsecase,
	favorites *usecase.FavoriteUsecase,
	photos *usecase.PhotoUsecase,
	log *logger.Logger,
) *Handler {
	return &Handler{
		gateway:   gateway,
		registrar: registrar,
		listings:  listings,
		feed:      feed,
		favorites: favorites,
		photos:    photos,
		draft:     usecase.NewDraftAttachments(),
		logger:    log.Named("HTTPHandler"),
	}
}

// ---- wire types ----

type listingResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	Emoji       string    `json:"emoji"`
	Age         string    `json:"age"`
	Gender      string    `json:"gender,omitempty"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location"`
	Phone       string    `json:"phone"`
	Photos      []string  `json:"photos"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

func toListingResponse(l *domain.Listing) listingResponse {
	photos := make([]string, 0, len(l.Photos))
	for _, p := range l.Photos {
		photos = append(photos, string(p))
	}
	return listingResponse{
		ID:          l.ID,
		OwnerID:     l.OwnerID,
		Name:        l.Name,
		Species:     string(l.Species),
		Emoji:       l.Species.Emoji(),
		Age:         l.Age,
		Gender:      l.Gender,
		Price:       l.Price,
		Description: l.Description,
		Location:    l.Location,
		Phone:       l.Phone,
		Photos:      photos,
		Active:      l.Active(),
		CreatedAt:   l.CreatedAt,
	}
}

func toListingResponses(listings []*domain.Listing) []listingResponse {
	out := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l))
	}
	return out
}

type createListingRequest struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Age         string `json:"age"`
	Gender      string `json:"gender"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Phone       string `json:"phone"`
}

// ---- user/session handlers ----

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DisplayName string `json:"display_name"`
		Email       string `json:"email"`
		Phone       string `json:"phone"`
		Location    string `json:"location"`
		Password    string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	profile, err := h.registrar.Register(r.Context(), &domain.UserProfile{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Phone:       req.Phone,
		Location:    req.Location,
	}, req.Password)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": profile.ID})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, token, err := h.gateway.Login(r.Context(), session.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"token":        token,
		"user_id":      profile.ID,
		"display_name": profile.DisplayName,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.gateway.Logout(r.Context())
	h.draft.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.gateway.Current()
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	stats, err := h.feed.StatsFor(r.Context(), profile)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":           profile.ID,
		"display_name": profile.DisplayName,
		"email":        profile.Email,
		"phone":        profile.Phone,
		"location":     profile.Location,
		"photo":        string(profile.Photo),
		"joined_at":    profile.JoinedAt,
		"stats": map[string]int64{
			"total":     stats.Total,
			"active":    stats.Active,
			"favorites": stats.Favorites,
		},
	})
}

// ---- listing handlers ----

func (h *Handler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var req createListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft := domain.Draft{
		Name:        req.Name,
		Species:     req.Species,
		Age:         req.Age,
		Gender:      req.Gender,
		Price:       req.Price,
		Description: req.Description,
		Location:    req.Location,
		Phone:       req.Phone,
		Photos:      h.draft.Refs(),
	}

	listing, err := h.listings.Create(r.Context(), draft)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	// The photo tray belongs to the submitted listing now.
	h.draft.Clear()
	writeJSON(w, http.StatusCreated, toListingResponse(listing))
}

func (h *Handler) GetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := h.listings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toListingResponse(listing))
}

func (h *Handler) SearchListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.Filter{
		Species:    domain.Species(q.Get("species")),
		Query:      q.Get("q"),
		ActiveOnly: q.Get("active") == "true",
	}
	if v := q.Get("min_price"); v != "" {
		filter.MinPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := q.Get("max_price"); v != "" {
		filter.MaxPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := q.Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}

	listings, err := h.listings.List(r.Context(), filter)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toListingResponses(listings))
}

func (h *Handler) MyListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listings.MyListings(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toListingResponses(listings))
}

func (h *Handler) SetListingStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.listings.SetActive(r.Context(), chi.URLParam(r, "id"), req.Active); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RecentFeed(w http.ResponseWriter, r *http.Request) {
	limit := defaultFeedLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	listings, err := h.feed.RecentFeed(r.Context(), limit)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toListingResponses(listings))
}

// ---- draft photo handlers ----

func (h *Handler) AttachDraftPhoto(w http.ResponseWriter, r *http.Request) {
	if h.photos == nil {
		writeError(w, http.StatusServiceUnavailable, "photo storage is not configured")
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxPhotoUploadBytes))
	if err != nil || len(data) == 0 {
		writeError(w, http.StatusBadRequest, "photo body is required")
		return
	}
	fileName := r.URL.Query().Get("filename")
	if fileName == "" {
		fileName = "photo.jpg"
	}

	ref, err := h.photos.Attach(r.Context(), h.draft, fileName, data)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"ref":    string(ref),
		"photos": h.draft.Refs(),
	})
}

func (h *Handler) RemoveDraftPhoto(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}
	refs, err := h.draft.RemoveAt(index)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"photos": refs})
}

func (h *Handler) ClearDraftPhotos(w http.ResponseWriter, r *http.Request) {
	h.draft.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DraftPhotos(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"photos": h.draft.Refs()})
}

// ---- favorite handlers ----

func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ListingID string `json:"listing_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ListingID == "" {
		writeError(w, http.StatusBadRequest, "listing_id is required")
		return
	}
	if err := h.favorites.Add(r.Context(), req.ListingID); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ListingID string `json:"listing_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ListingID == "" {
		writeError(w, http.StatusBadRequest, "listing_id is required")
		return
	}
	if err := h.favorites.Remove(r.Context(), req.ListingID); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.favorites.ListMine(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, favorites)
}

// ---- helpers ----

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidListingData), errors.Is(err, domain.ErrPhotoIndexOutOfRange):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrListingNotFound), errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrFavoriteNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateFavorite), errors.Is(err, domain.ErrDuplicateEmail), errors.Is(err, domain.ErrPhotoLimitExceeded):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("unhandled error", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
