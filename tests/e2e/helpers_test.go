//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kevin930119/CSPQWServer/internal/adapter/postgres"
	albumrepo "github.com/kevin930119/CSPQWServer/internal/adapter/postgres/album"
	counterrepo "github.com/kevin930119/CSPQWServer/internal/adapter/postgres/counter"
	progressrepo "github.com/kevin930119/CSPQWServer/internal/adapter/postgres/progress"
	"github.com/kevin930119/CSPQWServer/internal/adapter/postgres/testhelper"
	userrepo "github.com/kevin930119/CSPQWServer/internal/adapter/postgres/user"
	albumsvc "github.com/kevin930119/CSPQWServer/internal/service/album"
	countersvc "github.com/kevin930119/CSPQWServer/internal/service/counter"
	progresssvc "github.com/kevin930119/CSPQWServer/internal/service/progress"
	usersvc "github.com/kevin930119/CSPQWServer/internal/service/user"
	"github.com/kevin930119/CSPQWServer/internal/transport/middleware"
	"github.com/kevin930119/CSPQWServer/internal/transport/rest"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelWarn}))

	txManager := postgres.NewTxManager(pool)
	albums := albumrepo.New(pool)
	progress := progressrepo.New(pool)
	users := userrepo.New(pool)
	counters := counterrepo.New(pool)

	progressService := progresssvc.NewService(logger, albums, progress, users, txManager)
	albumService := albumsvc.NewService(logger, albums, progress, 10, 50)
	userService := usersvc.NewService(logger, users, 50)
	counterService := countersvc.NewService(logger, counters)

	albumHandler := rest.NewAlbumHandler(albumService, progressService, logger)
	userHandler := rest.NewUserHandler(userService, logger)
	counterHandler := rest.NewCounterHandler(counterService, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/albums", albumHandler.Albums)
	mux.HandleFunc("GET /api/album/images", albumHandler.AlbumImages)
	mux.HandleFunc("POST /api/album/image/complete", albumHandler.CompleteImage)
	mux.HandleFunc("GET /api/album/image/next", albumHandler.NextImage)
	mux.HandleFunc("GET /api/wx_openid", userHandler.WxOpenID)
	mux.HandleFunc("GET /api/rank", userHandler.Rank)
	mux.HandleFunc("GET /api/count", counterHandler.Get)
	mux.HandleFunc("POST /api/count", counterHandler.Update)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.WxIdentity,
	)(mux)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: srv.Client(), Pool: pool}
}

// envelope mirrors the wire format with raw data for per-test decoding.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// get performs a GET as the given identity and decodes the envelope.
func (ts *testServer) get(t *testing.T, path, openID string) envelope {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if openID != "" {
		req.Header.Set("x-wx-source", "miniprogram")
		req.Header.Set("x-wx-openid", openID)
	}
	return ts.do(t, req)
}

// post performs a POST with a JSON body as the given identity.
func (ts *testServer) post(t *testing.T, path, openID string, body any) envelope {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if openID != "" {
		req.Header.Set("x-wx-source", "miniprogram")
		req.Header.Set("x-wx-openid", openID)
	}
	return ts.do(t, req)
}

func (ts *testServer) do(t *testing.T, req *http.Request) envelope {
	t.Helper()

	resp, err := ts.Client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("%s %s: expected HTTP 200, got %d", req.Method, req.URL.Path, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func seedAlbum(t *testing.T, pool *pgxpool.Pool, name string, total int) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO albums (name, total, created_at, updated_at)
		 VALUES ($1, $2, now(), now()) RETURNING id`,
		name, total,
	).Scan(&id)
	if err != nil {
		t.Fatalf("seed album: %v", err)
	}
	return id
}

func seedImage(t *testing.T, pool *pgxpool.Pool, albumID int64, level int) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO album_images (parent_id, level, created_at, updated_at)
		 VALUES ($1, $2, now(), now()) RETURNING id`,
		albumID, level,
	).Scan(&id)
	if err != nil {
		t.Fatalf("seed image: %v", err)
	}
	return id
}
