package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holocron/internal/config"
	"holocron/internal/logging"
	"holocron/internal/models"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		Env: "development",
		Database: config.DatabaseConfig{
			SQLitePath:      filepath.Join(t.TempDir(), "holocron.db"),
			MaxOpenConns:    4,
			MaxIdleConns:    2,
			ConnMaxLifetime: time.Minute,
		},
		Security: config.SecurityConfig{CurrentUserID: 1},
		CORS:     config.CORSConfig{AllowedOrigins: []string{"*"}},
		Features: config.FeatureConfig{AutoMigrate: true, AdminEnabled: true},
	}
	logger := logging.New(logging.Config{Level: "error", Output: io.Discard})

	application, err := New(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })
	return application
}

func seed(t *testing.T, a *App) (planetID, characterID int64) {
	t.Helper()
	ctx := context.Background()
	name := "Alderaan"

	_, err := a.Store.CreateUser(ctx, "leia@rebellion.org", "hope", true)
	require.NoError(t, err)
	planet, err := a.Store.CreatePlanet(ctx, models.Planet{Name: &name})
	require.NoError(t, err)
	character, err := a.Store.CreateCharacter(ctx, models.Character{Name: &name})
	require.NoError(t, err)
	return planet.ID, character.ID
}

func call(t *testing.T, a *App, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	a.Handler().ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func listFavorites(t *testing.T, a *App) []map[string]any {
	t.Helper()
	rr := call(t, a, http.MethodGet, "/favorites")
	require.Equal(t, http.StatusOK, rr.Code)
	var favorites []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &favorites))
	return favorites
}

func TestMissingCharacter(t *testing.T) {
	a := newTestApp(t)

	rr := call(t, a, http.MethodGet, "/character/999")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"msg":"404 no existe"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestFavoritePlanetLifecycle(t *testing.T) {
	a := newTestApp(t)
	planetID, _ := seed(t, a)

	assert.Empty(t, listFavorites(t, a))

	rr := call(t, a, http.MethodPost, "/favorite/planet/"+itoa(planetID))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	favorites := listFavorites(t, a)
	require.Len(t, favorites, 1)
	assert.EqualValues(t, 1, favorites[0]["userId"])
	assert.EqualValues(t, planetID, favorites[0]["planetId"])
	assert.Nil(t, favorites[0]["characterId"])

	rr = call(t, a, http.MethodDelete, "/favorite/planet/"+itoa(planetID))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, listFavorites(t, a))
}

func TestDeleteMissingFavoriteLeavesTableUnchanged(t *testing.T) {
	a := newTestApp(t)
	planetID, characterID := seed(t, a)

	require.Equal(t, http.StatusOK, call(t, a, http.MethodPost, "/favorite/character/"+itoa(characterID)).Code)
	before := listFavorites(t, a)

	rr := call(t, a, http.MethodDelete, "/favorite/planet/"+itoa(planetID))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"msg":"no existe para borrar"}`, rr.Body.String())
	assert.Equal(t, before, listFavorites(t, a))
}

func TestDuplicateFavoritesRemoveOneAtATime(t *testing.T) {
	a := newTestApp(t)
	planetID, _ := seed(t, a)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, call(t, a, http.MethodPost, "/favorite/planet/"+itoa(planetID)).Code)
	}

	rr := call(t, a, http.MethodDelete, "/favorite/planet/"+itoa(planetID))
	require.Equal(t, http.StatusOK, rr.Code)
	var removed map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &removed))
	assert.EqualValues(t, 1, removed["id"])
	assert.Len(t, listFavorites(t, a), 1)
}

func TestFavoriteOfMissingPlanetIsIntegrityError(t *testing.T) {
	a := newTestApp(t)
	seed(t, a)

	rr := call(t, a, http.MethodPost, "/favorite/planet/999")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Empty(t, listFavorites(t, a))
}

func TestUserSerialization(t *testing.T) {
	a := newTestApp(t)
	planetID, characterID := seed(t, a)

	call(t, a, http.MethodPost, "/favorite/planet/"+itoa(planetID))
	call(t, a, http.MethodPost, "/favorite/character/"+itoa(characterID))
	call(t, a, http.MethodPost, "/favorite/planet/"+itoa(planetID))

	rr := call(t, a, http.MethodGet, "/user/1")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "password")

	var user struct {
		ID        int64             `json:"id"`
		Email     string            `json:"email"`
		Favorites []json.RawMessage `json:"favorites"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	require.Len(t, user.Favorites, 3)

	standalone := call(t, a, http.MethodGet, "/favorites")
	var all []json.RawMessage
	require.NoError(t, json.Unmarshal(standalone.Body.Bytes(), &all))
	for i := range all {
		assert.JSONEq(t, string(all[i]), string(user.Favorites[i]))
	}

	rr = call(t, a, http.MethodGet, "/users/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestAdminSurface(t *testing.T) {
	a := newTestApp(t)

	rr := httptest.NewRecorder()
	a.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/admin/characters",
		strings.NewReader(`{"name":"R2-D2","description":"astromech"}`)))
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"id":1,"name":"R2-D2","description":"astromech","eyeColor":"brown"}`, rr.Body.String())

	for i := 0; i < 2; i++ {
		rr = httptest.NewRecorder()
		a.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/admin/users",
			strings.NewReader(`{"email":"han@falcon.io","password":"solo"}`)))
	}
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = call(t, a, http.MethodDelete, "/admin/characters/1")
	assert.Equal(t, http.StatusOK, rr.Code)
	rr = call(t, a, http.MethodDelete, "/admin/characters/1")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHealth(t *testing.T) {
	a := newTestApp(t)

	rr := call(t, a, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestSearchByName(t *testing.T) {
	a := newTestApp(t)
	seed(t, a)

	rr := call(t, a, http.MethodGet, "/search?q=alder")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Sections []struct {
			Name  string `json:"name"`
			Items []struct {
				Title string `json:"title"`
				Href  string `json:"href"`
			} `json:"items"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Sections, 2)
	assert.Equal(t, "Alderaan", resp.Sections[0].Items[0].Title)
	assert.Equal(t, "/planet/1", resp.Sections[0].Items[0].Href)
}
