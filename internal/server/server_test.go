// Full-stack API tests: real router, middleware, handlers and repositories
// against a PostgreSQL container. Skipped when Docker is unavailable.
package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"treasure-hunt-service/internal/auth"
	"treasure-hunt-service/internal/handler"
	"treasure-hunt-service/internal/pkg/lock"
	"treasure-hunt-service/internal/pkg/metrics"
	"treasure-hunt-service/internal/repository"
	"treasure-hunt-service/internal/service"
)

const testSecret = "test-secret"

func checkDockerAvailable() bool {
	cmd := exec.Command("docker", "info")
	return cmd.Run() == nil
}

func setupRouter(t *testing.T) (*gin.Engine, func()) {
	if !checkDockerAvailable() {
		t.Skip("Docker is not available, skipping integration test")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(ctx, pool))

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	adminRepo := repository.NewAdminRepository(pool)
	huntRepo := repository.NewHuntRepository(pool)
	progressRepo := repository.NewProgressRepository(pool)

	huntService := service.NewHuntService(adminRepo, huntRepo, m)
	progressService := service.NewProgressService(huntRepo, progressRepo, lock.NewPlayerLock(), m)
	leaderboardService := service.NewLeaderboardService(progressRepo, 10, 100)

	router := NewRouter(&Dependencies{
		Authenticator: auth.NewTokenAuthenticator(testSecret),
		Hunts:         handler.NewHuntHandler(huntService),
		Progress:      handler.NewProgressHandler(progressService),
		Leaderboard:   handler.NewLeaderboardHandler(leaderboardService),
		Health:        handler.NewHealthHandler(poolPinger{pool}),
		Metrics:       m,
		Registry:      registry,
	})

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return router, cleanup
}

// poolPinger adapts a bare pgxpool to the health handler.
type poolPinger struct {
	pool *pgxpool.Pool
}

func (p poolPinger) HealthCheck(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func doJSON(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAPI_FullScenario(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	adminToken, err := auth.GenerateToken("GADMIN", testSecret, time.Hour)
	require.NoError(t, err)
	playerToken, err := auth.GenerateToken("GPLAYER", testSecret, time.Hour)
	require.NoError(t, err)

	// Mutations without a proof never reach the ledger
	w := doJSON(router, http.MethodPost, "/api/v1/initialize", "", `{}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// First caller becomes admin
	w = doJSON(router, http.MethodPost, "/api/v1/initialize", adminToken, `{}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "GADMIN")

	w = doJSON(router, http.MethodPost, "/api/v1/initialize", playerToken, `{}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Quoted reward amounts are accepted; the server digests the answer
	w = doJSON(router, http.MethodPost, "/api/v1/hunts", adminToken,
		`{"id":1,"name":"First Hunt","answer":"stellar","reward_amount":"100"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "stellar")

	// Duplicate ids are rejected
	w = doJSON(router, http.MethodPost, "/api/v1/hunts", adminToken,
		`{"id":1,"name":"Again","answer":"x","reward_amount":1}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Non-admin principals cannot create
	w = doJSON(router, http.MethodPost, "/api/v1/hunts", playerToken,
		`{"id":2,"name":"Second","answer":"x","reward_amount":1}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Wrong answer is a 200 with correct false
	w = doJSON(router, http.MethodPost, "/api/v1/hunts/1/submissions", playerToken, `{"answer":"nope"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"correct":false}`, w.Body.String())

	// Correct answer completes the hunt
	w = doJSON(router, http.MethodPost, "/api/v1/hunts/1/submissions", playerToken, `{"answer":"stellar"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"correct":true}`, w.Body.String())

	// Resubmission is a conflict, not a second payout
	w = doJSON(router, http.MethodPost, "/api/v1/hunts/1/submissions", playerToken, `{"answer":"stellar"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Progress reads are public
	w = doJSON(router, http.MethodGet, "/api/v1/players/GPLAYER/progress", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"player":"GPLAYER","completed_hunts":[1],"total_rewards":100}`, w.Body.String())

	w = doJSON(router, http.MethodGet, "/api/v1/hunt-ids", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ids":[1]}`, w.Body.String())

	w = doJSON(router, http.MethodGet, "/api/v1/hunts/99", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/leaderboard", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "GPLAYER")

	w = doJSON(router, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
