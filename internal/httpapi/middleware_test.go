package httpapi

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaddash/internal/config"
	"leaddash/internal/dataset"
	"leaddash/internal/events"
)

func configBody(t *testing.T, mutate func(*config.Config)) []byte {
	t.Helper()
	cfg := config.Default()
	mutate(&cfg)
	b, err := json.Marshal(cfg)
	require.NoError(t, err)
	return b
}

func TestCorsRefusesForeignOrigin(t *testing.T) {
	env := newEnv(t, nil, nil)

	pre := httptest.NewRequest(http.MethodOptions, "/config", nil)
	pre.Header.Set("Origin", "https://evil.example")
	pre.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, pre)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))

	body := configBody(t, func(c *config.Config) {
		c.Dashboard.Featured = []config.Property{{URL: "https://evil.example/x.png", Caption: "pwned"}}
	})
	put := httptest.NewRequest(http.MethodPut, "/config", strings.NewReader(string(body)))
	put.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, put)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	cur := env.deps.CfgVal.Load().(config.Config)
	assert.Equal(t, config.Default().Dashboard.Featured, cur.Dashboard.Featured)
	assert.NoFileExists(t, env.cfgPath)

	// reads go through but carry no CORS grant, so the browser hides them
	get := httptest.NewRequest(http.MethodGet, "/config", nil)
	get.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, get)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsSameOriginWrites(t *testing.T) {
	env := newEnv(t, nil, nil)

	body := configBody(t, func(c *config.Config) { c.Dashboard.Title = "Leads" })
	put := httptest.NewRequest(http.MethodPut, "/config", strings.NewReader(string(body)))
	put.Header.Set("Origin", "http://"+put.Host)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, put)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Leads", env.deps.CfgVal.Load().(config.Config).Dashboard.Title)
}

func TestCorsAllowListedOriginIsReadOnly(t *testing.T) {
	env := newEnv(t, nil, nil)
	cfg := config.Default()
	cfg.App.AllowedOrigins = []string{"http://localhost:5173"}
	env.deps.CfgVal.Store(cfg)

	cases := []struct {
		name   string
		method string
		want   int
		grant  bool
	}{
		{"read preflight", http.MethodGet, http.StatusNoContent, true},
		{"write preflight", http.MethodPut, http.StatusForbidden, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/view", nil)
			req.Header.Set("Origin", "http://localhost:5173")
			req.Header.Set("Access-Control-Request-Method", tc.method)
			rec := httptest.NewRecorder()
			env.handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
			assert.Equal(t, tc.grant, rec.Header().Get("Access-Control-Allow-Origin") != "")
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/options", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoverWritesEnvelope(t *testing.T) {
	env := newEnv(t, nil, nil)
	mux := http.NewServeMux()
	mux.HandleFunc("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })
	h := Handler(mux, env.deps)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "internal_error", apiErr.Error.Code)
	assert.Equal(t, rec.Header().Get("X-Request-ID"), apiErr.Error.RequestID)
}

func TestClassify(t *testing.T) {
	le := &dataset.LoadError{Kind: dataset.KindParse, Path: "leads.csv", Err: dataset.ErrParse}

	status, code, msg := classify(fmt.Errorf("render: %w", le))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "dataset_unavailable", code)
	assert.Contains(t, msg, "leads.csv")

	_, code, _ = classify(errors.New("template broke"))
	assert.Equal(t, "internal_error", code)
}

func TestEventsStream(t *testing.T) {
	env := newEnv(t, nil, nil)
	srv := httptest.NewServer(env.handler)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewReader(resp.Body)
	nextEvent := func() events.Event {
		t.Helper()
		for {
			line, err := lines.ReadString('\n')
			require.NoError(t, err)
			if data, ok := strings.CutPrefix(strings.TrimSpace(line), "data: "); ok {
				var e events.Event
				require.NoError(t, json.Unmarshal([]byte(data), &e))
				return e
			}
		}
	}

	assert.Equal(t, events.TypePing, nextEvent().Type)

	// the ping is written after subscribing, so this publish is delivered
	env.deps.Hub.Publish(events.MakeEvent("", events.TypeConfigReloaded, nil))
	assert.Equal(t, events.TypeConfigReloaded, nextEvent().Type)
}
