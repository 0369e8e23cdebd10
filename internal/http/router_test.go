package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	profilerepo "github.com/followai/followai-backend/internal/data/repos/profile"
	"github.com/followai/followai-backend/internal/data/repos/testutil"
	xprepo "github.com/followai/followai-backend/internal/data/repos/xp"
	httpH "github.com/followai/followai-backend/internal/http/handlers"
	httpMW "github.com/followai/followai-backend/internal/http/middleware"
	"github.com/followai/followai-backend/internal/services"
)

func newTestRouter(t *testing.T) (*gin.Engine, services.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	log := testutil.Logger(t)

	profiles := profilerepo.NewProfileRepo(db, log)
	items := profilerepo.NewPortfolioItemRepo(db, log)
	events := xprepo.NewXpEventRepo(db, log)

	auth := services.NewAuthService(log, "test-secret", time.Hour)
	xp := services.NewXpService(db, log, events, profiles, nil, nil)
	profileSvc := services.NewProfileService(db, log, profiles, items, xp)
	portfolioSvc := services.NewPortfolioService(db, log, items, profileSvc, xp)
	leaderboardSvc := services.NewLeaderboardService(db, log, profiles, nil)

	router := NewRouter(RouterConfig{
		Log:                log,
		AuthMiddleware:     httpMW.NewAuthMiddleware(log, auth),
		XpHandler:          httpH.NewXpHandler(xp),
		ProfileHandler:     httpH.NewProfileHandler(profileSvc),
		PortfolioHandler:   httpH.NewPortfolioHandler(portfolioSvc),
		LeaderboardHandler: httpH.NewLeaderboardHandler(leaderboardSvc),
		HealthHandler:      httpH.NewHealthHandler(),
	})
	return router, auth
}

func TestHealthcheck(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthcheck status = %d, want 200", rec.Code)
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/api/xp/stats", "/api/profile", "/api/portfolio"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("GET %s without token: status = %d, want 401", path, rec.Code)
		}
	}
}

func TestAwardAndStatsOverHTTP(t *testing.T) {
	router, auth := newTestRouter(t)
	db := testutil.DB(t)
	ctx := context.Background()

	user := testutil.SeedProfile(t, ctx, db, "http-"+uuid.NewString()[:8])
	token, err := auth.IssueToken(user.ID)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	body, _ := json.Marshal(map[string]any{
		"amount":    100,
		"reason":    "Task approved",
		"source":    "task_submission",
		"source_id": "sub-http-1",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/xp/award", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("award status = %d, body %s", rec.Code, rec.Body.String())
	}

	var awardResp struct {
		Result struct {
			Outcome    string `json:"outcome"`
			NewTotalXp int    `json:"new_total_xp"`
			NewLevel   int    `json:"new_level"`
		} `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &awardResp); err != nil {
		t.Fatalf("decode award response: %v", err)
	}
	if awardResp.Result.Outcome != "granted" || awardResp.Result.NewTotalXp != 100 || awardResp.Result.NewLevel != 2 {
		t.Fatalf("award result = %+v", awardResp.Result)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/xp/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d, body %s", rec.Code, rec.Body.String())
	}

	var statsResp struct {
		Stats struct {
			Level   int `json:"level"`
			TotalXp int `json:"total_xp"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &statsResp); err != nil {
		t.Fatalf("decode stats response: %v", err)
	}
	if statsResp.Stats.TotalXp != 100 || statsResp.Stats.Level != 2 {
		t.Fatalf("stats = %+v", statsResp.Stats)
	}
}

func TestPublicLeaderboardEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard?limit=5", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("leaderboard status = %d, body %s", rec.Code, rec.Body.String())
	}
}
