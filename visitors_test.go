package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitorTracking(t *testing.T) {
	app := newTestApp(t)
	v := app.srv.visitors

	visit := func(path string, dnt bool) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "203.0.113.7:5555"
		if dnt {
			req.Header.Set("DNT", "1")
		}
		app.do(req)
	}
	visit("/", false)
	visit("/work-content", false)
	visit("/", true)
	visit("/privacy", false)
	visit("/admin/login", false)
	v.wait()

	stats, err := v.stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalVisitors)
	assert.EqualValues(t, 1, stats.UniqueVisitors)
	assert.EqualValues(t, 2, stats.VisitorsToday)
	require.Len(t, stats.RecentVisitors, 2)
	assert.Len(t, stats.RecentVisitors[0].HashedIP, 16)
	assert.NotContains(t, stats.RecentVisitors[0].HashedIP, "203.0.113.7")

	app.login(t)
	w := app.do(httptest.NewRequest(http.MethodGet, "/admin/api/visitors", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode[VisitorStats](t, w).TotalVisitors)
}

func TestVisitorCleanup(t *testing.T) {
	app := newTestApp(t)
	v := app.srv.visitors

	orig := v.now
	v.now = func() time.Time { return orig().Add(-400 * 24 * time.Hour) }
	v.record("198.51.100.1", "old", "/")
	v.now = orig
	v.record("198.51.100.2", "new", "/")

	n, err := v.cleanup(365 * 24 * time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	stats, err := v.stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalVisitors)
	assert.Equal(t, "new", stats.RecentVisitors[0].UserAgent)
}

func TestHashIPIsStable(t *testing.T) {
	a := newVisitorLog(nil, "salt-a", time.UTC)
	b := newVisitorLog(nil, "salt-b", time.UTC)
	assert.Equal(t, a.hashIP("10.0.0.1"), a.hashIP("10.0.0.1"))
	assert.NotEqual(t, a.hashIP("10.0.0.1"), a.hashIP("10.0.0.2"))
	assert.NotEqual(t, a.hashIP("10.0.0.1"), b.hashIP("10.0.0.1"))
}
