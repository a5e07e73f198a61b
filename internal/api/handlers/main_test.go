package handlers_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/voltask/tasksphere/internal/api"
	"github.com/voltask/tasksphere/internal/auth"
	"github.com/voltask/tasksphere/internal/testutil"
	"gorm.io/gorm"
)

// env wires the real router against an in-memory database and a mock mailer
// so handler tests exercise the full middleware chain.
type env struct {
	router http.Handler
	db     *gorm.DB
	jwt    *auth.JWTService
	mailer *testutil.MockMailer
}

func setupEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.SetupTestDB(t)
	mailer := &testutil.MockMailer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtService := testutil.CreateTestJWTService()
	authService := auth.NewService(db, jwtService, auth.NewOTPService(db), mailer, logger)

	router := api.NewRouter(api.RouterConfig{
		DB:          db,
		Logger:      logger,
		JWTService:  jwtService,
		AuthService: authService,
	})

	return &env{router: router, db: db, jwt: jwtService, mailer: mailer}
}

func (e *env) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}
