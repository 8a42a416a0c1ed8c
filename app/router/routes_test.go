package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/orgdesk/orgdesk/app/handlers"
	"github.com/orgdesk/orgdesk/app/middleware"
	"github.com/orgdesk/orgdesk/app/services"
	"github.com/orgdesk/orgdesk/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) Router {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}

	h := Handlers{
		Auth:          handlers.NewAuthHandler(nil, nil),
		Organizations: handlers.NewOrganizationHandler(nil),
		Branches:      handlers.NewBranchHandler(nil),
		Users:         handlers.NewUserHandler(nil),
		Lookups:       handlers.NewLookupHandler(nil),
		FilterOptions: handlers.NewFilterOptionsHandler(nil),
	}
	sessions := middleware.NewSessionMiddleware(nil, services.NewNoopSessionCache())

	r := NewFiberRouter(cfg, h, sessions)
	r.SetupRoutes()
	return r
}

// Every resource listing answers on its group root, with /list kept as an
// alias. An unauthenticated request tells mounted from missing: a mounted
// protected route answers 401 where an absent one answers 404.
func TestListRoutesServeTheGroupRoot(t *testing.T) {
	app := newTestRouter(t).GetApp()

	paths := []string{
		"/api/organizations",
		"/api/organizations/list",
		"/api/branches",
		"/api/branches/list",
		"/api/users",
		"/api/users/list",
		"/api/lookup/organization-types",
		"/api/lookup/organization-types/list",
		"/api/lookup/countries",
		"/api/lookup/cities",
	}
	for _, path := range paths {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/no-such-resource", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
