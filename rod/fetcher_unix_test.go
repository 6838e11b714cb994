//go:build integration && !windows

package rod_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/lexcrawl/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Close_StopsBrowserAfterRedirectedFetch(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/legal-content/EN/TXT/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/legal-content/EN/AUTO/?uri=CELEX:32016R0679", http.StatusFound)
	})
	mux.HandleFunc("/legal-content/EN/AUTO/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><h1>GDPR</h1></body></html>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)

	pid := fetcher.LauncherPID()
	require.NotZero(t, pid)
	require.NoError(t, syscall.Kill(pid, syscall.Signal(0)), "launcher should run before Close")

	resp, err := fetcher.Fetch(context.Background(), srv.URL+"/legal-content/EN/TXT/?uri=CELEX:32016R0679")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/legal-content/EN/AUTO/?uri=CELEX:32016R0679", resp.URL)
	assert.Contains(t, resp.Body, "GDPR")

	require.NoError(t, fetcher.Close())
	time.Sleep(100 * time.Millisecond)

	assert.Error(t, syscall.Kill(pid, syscall.Signal(0)), "launcher should be gone after Close")
}
