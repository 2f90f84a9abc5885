package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/wtwr-backend/internal/config"
	"github.com/deppfellow/wtwr-backend/internal/errs"
	"github.com/deppfellow/wtwr-backend/internal/handler"
	"github.com/deppfellow/wtwr-backend/internal/model"
	"github.com/deppfellow/wtwr-backend/internal/repository"
	"github.com/deppfellow/wtwr-backend/internal/server"
	"github.com/deppfellow/wtwr-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	callerID = "507f1f77bcf86cd799439011"
	absentID = "000000000000000000000000"
	badID    = "not-an-id"
)

// newTestRouter wires the whole application on the memory driver.
func newTestRouter(t *testing.T, env map[string]string) *echo.Echo {
	t.Helper()

	t.Setenv(config.EnvPrefix+"DATABASE.DRIVER", config.DriverMemory)
	for k, v := range env {
		t.Setenv(config.EnvPrefix+k, v)
	}

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	logger := zerolog.Nop()
	s, err := server.New(cfg, &logger, nil)
	require.NoError(t, err)

	services := service.NewServices(s, repository.NewRepositories(s))
	return NewRouter(s, handler.NewHandlers(s, services))
}

func do(t *testing.T, r *echo.Echo, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func createItem(t *testing.T, r *echo.Echo) model.ClothingItem {
	t.Helper()

	rec := do(t, r, http.MethodPost, "/clothing-items",
		`{"name":"Wool scarf","weather":"cold","imageUrl":"https://example.com/scarf.png"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return *decode[model.ItemResponse](t, rec).Data
}

func TestUsersFlow(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(t, r, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, r, http.MethodPost, "/users", `{"name":"Ada","avatar":"http://x/a.png"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[model.User](t, rec)
	assert.Equal(t, "Ada", created.Name)
	assert.True(t, model.IsValidID(created.ID))

	rec = do(t, r, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	users := decode[[]model.User](t, rec)
	require.Len(t, users, 1)
	assert.Equal(t, created.ID, users[0].ID)

	rec = do(t, r, http.MethodGet, "/users/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://x/a.png", decode[model.User](t, rec).Avatar)
}

func TestUserErrors(t *testing.T) {
	r := newTestRouter(t, nil)

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		status  int
		message string
	}{
		{"absent user", http.MethodGet, "/users/" + absentID, "", http.StatusNotFound, "User not found"},
		{"malformed user id", http.MethodGet, "/users/" + badID, "", http.StatusBadRequest, "Invalid user ID"},
		{"missing avatar", http.MethodPost, "/users", `{"name":"Ada"}`, http.StatusBadRequest, "Validation failed"},
		{"malformed body", http.MethodPost, "/users", `{"name":`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, r, tt.method, tt.path, tt.body)
			require.Equal(t, tt.status, rec.Code)

			body := decode[errs.HTTPError](t, rec)
			assert.NotEmpty(t, body.Message)
			if tt.message != "" {
				assert.Equal(t, tt.message, body.Message)
			}
		})
	}
}

func TestItemsFlow(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(t, r, http.MethodGet, "/clothing-items", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	item := createItem(t, r)
	assert.Equal(t, callerID, item.Owner)
	assert.Empty(t, item.Likes)
	assert.Equal(t, model.WeatherCold, item.Weather)

	rec = do(t, r, http.MethodGet, "/clothing-items", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.ClothingItem](t, rec), 1)

	likesPath := "/clothing-items/" + item.ID + "/likes"

	for i := 0; i < 2; i++ {
		rec = do(t, r, http.MethodPut, likesPath, "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, []string{callerID}, decode[model.ItemResponse](t, rec).Data.Likes)

	for i := 0; i < 2; i++ {
		rec = do(t, r, http.MethodDelete, likesPath, "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Empty(t, decode[model.ItemResponse](t, rec).Data.Likes)

	rec = do(t, r, http.MethodDelete, "/clothing-items/"+item.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, item.ID, decode[model.ItemResponse](t, rec).Data.ID)

	rec = do(t, r, http.MethodGet, "/clothing-items", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestItemIDErrors(t *testing.T) {
	r := newTestRouter(t, nil)

	routes := []struct {
		method string
		suffix string
	}{
		{http.MethodDelete, ""},
		{http.MethodPut, "/likes"},
		{http.MethodDelete, "/likes"},
	}

	for _, route := range routes {
		t.Run(route.method+route.suffix, func(t *testing.T) {
			rec := do(t, r, route.method, "/clothing-items/"+badID+route.suffix, "")
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Invalid item ID", decode[errs.HTTPError](t, rec).Message)

			rec = do(t, r, route.method, "/clothing-items/"+absentID+route.suffix, "")
			require.Equal(t, http.StatusNotFound, rec.Code)
			body := decode[errs.HTTPError](t, rec)
			assert.Equal(t, "Item not found", body.Message)
			assert.Equal(t, "ITEM_NOT_FOUND", body.Code)
		})
	}
}

func TestItemRoutesUsePathIDOverBody(t *testing.T) {
	r := newTestRouter(t, nil)

	target := createItem(t, r)
	other := createItem(t, r)
	body := `{"itemID":"` + other.ID + `","itemId":"` + other.ID + `"}`

	rec := do(t, r, http.MethodPut, "/clothing-items/"+target.ID+"/likes", body)
	require.Equal(t, http.StatusOK, rec.Code)
	liked := decode[model.ItemResponse](t, rec).Data
	assert.Equal(t, target.ID, liked.ID)
	assert.Equal(t, []string{callerID}, liked.Likes)

	rec = do(t, r, http.MethodDelete, "/clothing-items/"+target.ID, body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, target.ID, decode[model.ItemResponse](t, rec).Data.ID)

	rec = do(t, r, http.MethodGet, "/clothing-items", "")
	items := decode[[]model.ClothingItem](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, other.ID, items[0].ID)
	assert.Empty(t, items[0].Likes)
}

func TestIDsAreCaseInsensitive(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(t, r, http.MethodPost, "/users", `{"name":"Ada","avatar":"http://x/a.png"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	user := decode[model.User](t, rec)

	rec = do(t, r, http.MethodGet, "/users/"+strings.ToUpper(user.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID, decode[model.User](t, rec).ID)

	item := createItem(t, r)
	rec = do(t, r, http.MethodPut, "/clothing-items/"+strings.ToUpper(item.ID)+"/likes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, item.ID, decode[model.ItemResponse](t, rec).Data.ID)
}

func TestCreateRejectsBlankName(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(t, r, http.MethodPost, "/users", `{"name":"   ","avatar":"http://x/a.png"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[errs.HTTPError](t, rec)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "name", body.Errors[0].Field)
	assert.Equal(t, "must not be blank", body.Errors[0].Error)
}

func TestCreateItemValidation(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(t, r, http.MethodPost, "/clothing-items", `{"name":"Hat","weather":"tropical","imageUrl":"not a url"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[errs.HTTPError](t, rec)
	assert.Equal(t, "Validation failed", body.Message)

	fields := make([]string, 0, len(body.Errors))
	for _, fe := range body.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"weather", "imageUrl"}, fields)
}

func TestUnmatchedRoutes(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(t, r, http.MethodGet, "/does-not-exist", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decode[errs.HTTPError](t, rec).Message)

	rec = do(t, r, http.MethodPatch, "/clothing-items", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = do(t, r, http.MethodGet, "/clothing-items/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTModeRequiresIdentityForMutations(t *testing.T) {
	r := newTestRouter(t, map[string]string{
		"AUTH.MODE":       config.AuthModeJWT,
		"AUTH.SECRET_KEY": "secret",
	})

	rec := do(t, r, http.MethodGet, "/clothing-items", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, r, http.MethodPost, "/clothing-items",
		`{"name":"Cap","weather":"hot","imageUrl":"https://example.com/cap.png"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", decode[errs.HTTPError](t, rec).Message)

	rec = do(t, r, http.MethodPut, "/clothing-items/"+absentID+"/likes", "",
		echo.HeaderAuthorization, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStatus(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(t, r, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, config.DriverMemory, body["driver"])
}

func TestRequestIDHeader(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(t, r, http.MethodGet, "/users", "", "X-Request-ID", "req-1")
	assert.Equal(t, "req-1", rec.Header().Get("X-Request-ID"))
}
