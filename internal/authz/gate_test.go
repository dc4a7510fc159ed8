package authz_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/authz"
	"animal-shelter/internal/middleware"
	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withClaims(r *http.Request, c auth.Claims) *http.Request {
	return r.WithContext(middleware.WithClaims(r.Context(), c))
}

func TestTable_DefaultRoles(t *testing.T) {
	tbl := authz.DefaultTable()

	assert.True(t, tbl.Allows(authz.RoleAdmin, authz.PermAnimalsDelete))
	assert.False(t, tbl.Allows(authz.RoleStaff, authz.PermAnimalsDelete))
	assert.True(t, tbl.Allows(authz.RoleStaff, authz.PermApplicationsReview))
	assert.False(t, tbl.Allows(authz.RoleVolunteer, authz.PermApplicationsReview))
	assert.True(t, tbl.Allows(authz.RoleVolunteer, authz.PermTasksWrite))
	assert.Empty(t, tbl.Permissions(authz.RoleAdopter))
	assert.False(t, tbl.Allows(authz.Role("GHOST"), authz.PermAnimalsRead))
}

func TestNewTable_IsImmutable(t *testing.T) {
	perms := []authz.Permission{authz.PermTasksRead}
	def := map[authz.Role][]authz.Permission{authz.RoleVolunteer: perms}
	tbl := authz.NewTable(def)

	perms[0] = authz.PermAnimalsDelete
	def[authz.RoleAdopter] = []authz.Permission{authz.PermAnimalsDelete}

	assert.True(t, tbl.Allows(authz.RoleVolunteer, authz.PermTasksRead))
	assert.False(t, tbl.Allows(authz.RoleVolunteer, authz.PermAnimalsDelete))
	assert.False(t, tbl.Allows(authz.RoleAdopter, authz.PermAnimalsDelete))

	got := tbl.Permissions(authz.RoleVolunteer)
	got[0] = authz.PermAnimalsDelete
	assert.Equal(t, []authz.Permission{authz.PermTasksRead}, tbl.Permissions(authz.RoleVolunteer))
}

func TestGate_Require(t *testing.T) {
	gate := authz.NewGate(authz.DefaultTable(), logger.NewTest(t))

	cases := []struct {
		name   string
		claims *auth.Claims
		want   int
		called bool
	}{
		{name: "anonymous", claims: nil, want: http.StatusUnauthorized},
		{name: "adopter", claims: &auth.Claims{UserID: "u1", Role: "ADOPTER"}, want: http.StatusForbidden},
		{name: "unknown role", claims: &auth.Claims{UserID: "u1", Role: "root"}, want: http.StatusForbidden},
		{name: "staff", claims: &auth.Claims{UserID: "u2", Role: "STAFF"}, want: http.StatusNoContent, called: true},
		{name: "admin lowercase", claims: &auth.Claims{UserID: "u3", Role: "admin"}, want: http.StatusNoContent, called: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			h := gate.Require(authz.PermApplicationsReview)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusNoContent)
			}))

			req := httptest.NewRequest(http.MethodPost, "/staff/applications/x/status", nil)
			if tc.claims != nil {
				req = withClaims(req, *tc.claims)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
			assert.Equal(t, tc.called, called)
		})
	}
}

func TestGuard_DoesNotRunOperationOnDenial(t *testing.T) {
	gate := authz.NewGate(authz.DefaultTable(), nil)
	runs := 0
	op := authz.Guard(gate, authz.PermOutcomesWrite, func(ctx context.Context, in string) (string, error) {
		runs++
		return "ok:" + in, nil
	})

	ctx := middleware.WithClaims(context.Background(), auth.Claims{UserID: "v1", Role: "VOLUNTEER"})
	_, err := op(ctx, "x")
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.NotEqual(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Zero(t, runs)

	ctx = middleware.WithClaims(context.Background(), auth.Claims{UserID: "s1", Role: "STAFF"})
	out, err := op(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "ok:x", out)
	assert.Equal(t, 1, runs)
}

func TestMe_ListsRolePermissions(t *testing.T) {
	gate := authz.NewGate(authz.DefaultTable(), logger.NewTest(t))
	r := chi.NewRouter()
	authz.RegisterRoutes(r, gate, logger.NewTest(t))

	rec := httptest.NewRecorder()
	req := withClaims(httptest.NewRequest(http.MethodGet, "/me", nil), auth.Claims{UserID: "v1", Role: "volunteer"})
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Role        string   `json:"role"`
		Permissions []string `json:"permissions"`
		Dashboard   bool     `json:"dashboard"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VOLUNTEER", body.Role)
	assert.Contains(t, body.Permissions, "tasks:write")
	assert.True(t, body.Dashboard)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
