package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httptransport "github.com/go-openapi/runtime/client"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/sm8ta/campusride_admin_console/internal/adapter/logger"
	"github.com/sm8ta/campusride_admin_console/internal/adapter/prometheus"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	transport := httptransport.New(strings.TrimPrefix(srv.URL, "http://"), "/api/v1", []string{"http"})
	metrics := prometheus.NewPrometheusAdapterWith(promclient.NewRegistry())
	return NewClientWithTransport(transport, 5*time.Second, logger.NewNop(), metrics)
}

func writeEnvelope(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var cred domain.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&cred))
		assert.Equal(t, "ada@unilag.edu.ng", cred.Email)

		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Login successful",
			"data":    map[string]interface{}{"token": "backend-token"},
		})
	})

	res, err := c.Login(context.Background(), &domain.Credentials{Email: "ada@unilag.edu.ng", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "backend-token", res.Token)
}

func TestLoginRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, map[string]interface{}{
			"success": false,
			"message": "Invalid credentials",
		})
	})

	_, err := c.Login(context.Background(), &domain.Credentials{Email: "a", Password: "b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	var berr *domain.BackendError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, "Invalid credentials", berr.Message)
	assert.Equal(t, "login", berr.Operation)
}

func TestListCampusesOmitsEmptyFilters(t *testing.T) {
	var query []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = append(query, r.URL.RawQuery)
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data": []map[string]interface{}{
				{"id": "c1", "name": "Unilag", "averageHalfDistance": 2.5, "createdAt": "2025-01-02T10:00:00.000Z"},
			},
		})
	})

	campuses, err := c.ListCampuses(context.Background(), "tkn", domain.CampusFilter{})
	require.NoError(t, err)
	require.Len(t, campuses, 1)
	assert.Equal(t, "Unilag", campuses[0].Name)
	assert.Equal(t, 2.5, campuses[0].AverageHalfDistance)

	_, err = c.ListCampuses(context.Background(), "tkn", domain.CampusFilter{Name: "uni"})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "name=uni"}, query)
}

func TestUpdateZoneUsesPut(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/zone/z1", r.URL.Path)

		var body domain.ZonePayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "c9", body.CampusID)
		assert.Len(t, body.Coordinates, 4)

		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"id": "z1", "campusId": "c9", "name": body.Name},
		})
	})

	zone, err := c.UpdateZone(context.Background(), "tkn", "z1", &domain.ZonePayload{
		Name:        "Arts",
		Description: "Arts block",
		CampusID:    "c9",
		Coordinates: domain.EmptyQuad(),
	})
	require.NoError(t, err)
	assert.Equal(t, "c9", zone.CampusID)
}

func TestDeleteZoneEmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	assert.NoError(t, c.DeleteZone(context.Background(), "tkn", "z1"))
}

func TestGetZoneNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, map[string]interface{}{"success": false, "message": "Zone not found"})
	})
	_, err := c.GetZone(context.Background(), "tkn", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListRidersReadsMeta(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "bello", r.URL.Query().Get("searchTerm"))
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    []map[string]interface{}{{"id": "r1", "firstName": "Tunde", "status": "PENDING"}},
			"meta":    map[string]interface{}{"page": 2, "limit": 10, "total": 31, "totalPage": 4},
		})
	})

	page, err := c.ListRiders(context.Background(), "tkn", domain.RiderFilter{SearchTerm: "bello"}, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 4, page.TotalPages)
	assert.Equal(t, 31, page.Total)
	require.Len(t, page.Riders, 1)
	assert.Equal(t, domain.RiderPending, page.Riders[0].Status)
}

func TestCreateRiderMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Tunde", r.FormValue("firstName"))
		assert.Equal(t, "PENDING", r.FormValue("status"))

		f, hdr, err := r.FormFile("numberPlate")
		require.NoError(t, err)
		defer f.Close()
		content, _ := io.ReadAll(f)
		assert.Equal(t, "plate.jpg", hdr.Filename)
		assert.Equal(t, "plate-bytes", string(content))

		writeEnvelope(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"id": "r1", "firstName": "Tunde", "status": "PENDING"},
		})
	})

	rider, err := c.CreateRider(context.Background(), "tkn", &domain.RiderApplication{
		FirstName:              "Tunde",
		LastName:               "Bello",
		BikeRegistrationNumber: "LAG-1",
		BikeModel:              "Bajaj",
		Status:                 domain.RiderPending,
		Documents: []domain.Upload{
			{Kind: domain.NumberPlate, Filename: "plate.jpg", Content: strings.NewReader("plate-bytes")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "r1", rider.ID)
}

func TestTransportFailureIsBackendError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := strings.TrimPrefix(srv.URL, "http://")
	srv.Close()

	transport := httptransport.New(addr, "/", []string{"http"})
	c := NewClientWithTransport(transport, time.Second, logger.NewNop(), prometheus.NewPrometheusAdapterWith(promclient.NewRegistry()))

	_, err := c.ListZones(context.Background(), "tkn")
	assert.ErrorIs(t, err, domain.ErrBackend)
}
