package accounts

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestRegisterHandler_ValidationErrors(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, newTestService())

	body := `{"username":"ana","email":"not-an-email","password":"12345678","password2":"87654321"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/users/register/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, []string{"Enter a valid email address."}, got["email"])
	require.Equal(t, []string{"Password fields didn't match."}, got["password"])
}

func TestTokenHandler_Flow(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, newTestService())

	reg := `{"username":"ana","email":"a@x.io","password":"12345678","password2":"12345678"}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/users/register/", strings.NewReader(reg)))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotContains(t, rec.Body.String(), "hash:")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/token/", strings.NewReader(`{"username":"ana","password":"12345678"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"access":"access:1","refresh":"refresh:1"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/token/", strings.NewReader(`{"username":"ana","password":"bad"}`)))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// sin middleware de auth no hay claims
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/users/profile/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
