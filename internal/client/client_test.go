package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","additional":{"leads":[],"meta":{"page":1,"total":0,"totalPages":0}}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	page, err := c.ListLeads(context.Background(), ListLeadsParams{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Meta.Page)
	assert.Empty(t, page.Leads)
}

func TestMissingAdditionalIsAFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// a 200 with success:true but no payload still counts as failed
		_, _ = w.Write([]byte(`{"success":true,"message":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	_, err := c.ListLeads(context.Background(), ListLeadsParams{})
	assert.ErrorIs(t, err, ErrMissingAdditional)
}

func TestFailureEnvelopeSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"success":false,"message":"forbidden"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	_, err := c.AssignToTeam(context.Background(), 5, []int64{1, 2})
	require.Error(t, err)
	assert.EqualError(t, err, "forbidden")
}

func TestUnauthorizedClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	cleared := false
	c := New(srv.URL, "expired")
	c.OnUnauthorized = func() { cleared = true }

	_, err := c.Role(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, cleared)
}

func TestBulkCountComesFromServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/team-assignments/teams/5/leads", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"message":"assigned","additional":{"count":1}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	count, err := c.AssignToTeam(context.Background(), 5, []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 1, count, "requested three, server applied one")
}
