package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animalmarket/listing-service/internal/adapter/repository/memory"
	"github.com/animalmarket/listing-service/internal/listing/usecase"
	"github.com/animalmarket/listing-service/internal/platform/logger"
	"github.com/animalmarket/listing-service/internal/session"
)

// newTestServer wires the full stack against in-memory repositories.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := logger.NewNop()

	listingRepo := memory.NewListingRepository()
	favoriteRepo := memory.NewFavoriteRepository()
	users := memory.NewUserRepository()

	gateway := session.NewGateway(users, nil, "test-secret", log)
	listingUC := usecase.NewListingUsecase(listingRepo, gateway, nil, nil, nil, log)
	feedUC := usecase.NewFeedUsecase(listingRepo, favoriteRepo, log)
	favoriteUC := usecase.NewFavoriteUsecase(favoriteRepo, listingRepo, gateway, log)

	handler := NewHandler(gateway, users, listingUC, feedUC, favoriteUC, nil, log)
	server := httptest.NewServer(NewRouter(handler, gateway, log))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequestWithContext(context.Background(), method, url, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func registerAndLogin(t *testing.T, server *httptest.Server) string {
	t.Helper()
	resp := doJSON(t, http.MethodPost, server.URL+"/api/user/register", "", map[string]string{
		"display_name": "Demo Çiftçi",
		"email":        "demo@example.com",
		"password":     "secret-password",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, server.URL+"/api/user/login", "", map[string]string{
		"email":    "demo@example.com",
		"password": "secret-password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login map[string]string
	decodeBody(t, resp, &login)
	require.NotEmpty(t, login["token"])
	return login["token"]
}

func sampleListingBody() map[string]string {
	return map[string]string{
		"name":     "Sarıkız",
		"species":  "cattle",
		"age":      "3",
		"price":    "25000",
		"location": "Ankara",
		"phone":    "+905551234567",
	}
}

func TestCreateListing_RequiresAuth(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/listings", "", sampleListingBody())
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateListing_EndToEnd(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/listings", token, sampleListingBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created listingResponse
	decodeBody(t, resp, &created)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Sarıkız", created.Name)
	assert.Equal(t, "cattle", created.Species)
	assert.Equal(t, "🐄", created.Emoji)
	assert.True(t, created.Active)

	// The new listing shows up first in the public feed.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/feed", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var feed []listingResponse
	decodeBody(t, resp, &feed)
	require.Len(t, feed, 1)
	assert.Equal(t, created.ID, feed[0].ID)

	// Profile stats reflect the single active listing.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/user/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var profile struct {
		Stats map[string]int64 `json:"stats"`
	}
	decodeBody(t, resp, &profile)
	assert.Equal(t, int64(1), profile.Stats["total"])
	assert.Equal(t, int64(1), profile.Stats["active"])
}

func TestCreateListing_ValidationFailureLeavesFeedUnchanged(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server)

	body := sampleListingBody()
	body["name"] = ""
	resp := doJSON(t, http.MethodPost, server.URL+"/api/listings", token, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/api/feed", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var feed []listingResponse
	decodeBody(t, resp, &feed)
	assert.Empty(t, feed)
}

func TestSetListingStatus_RemovesFromFeed(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/listings", token, sampleListingBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created listingResponse
	decodeBody(t, resp, &created)

	resp = doJSON(t, http.MethodPatch, server.URL+"/api/listings/"+created.ID+"/status", token, map[string]bool{"active": false})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/api/feed", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var feed []listingResponse
	decodeBody(t, resp, &feed)
	assert.Empty(t, feed)

	// The listing itself is still retrievable, just inactive.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/listings/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched listingResponse
	decodeBody(t, resp, &fetched)
	assert.False(t, fetched.Active)
}

func TestLogout_BlocksOwnerScopedOperations(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/user/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// The bearer token is still signed, but the session is guest again.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/listings", token, sampleListingBody())
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFavorites_AddDuplicateConflicts(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/listings", token, sampleListingBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created listingResponse
	decodeBody(t, resp, &created)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/favorites", token, map[string]string{"listing_id": created.ID})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, server.URL+"/api/favorites", token, map[string]string{"listing_id": created.ID})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestGetListing_NotFound(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/listings/unknown-id", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDraftPhotos_UnavailableWithoutStorage(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server)

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/draft/photos", bytes.NewReader([]byte("jpeg-bytes")))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
