// Package testutil builds a fully wired API over in-memory SQLite and
// miniredis for handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Nir-Bhay/LinkedIn-clone/config"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/cache"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/db"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/router"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/svc"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const Password = "secret123"

var emailSeq atomic.Int64

type Env struct {
	Svc    *svc.ServiceContext
	Router *gin.Engine
	Redis  *miniredis.Miniredis
}

func Config() *config.Config {
	return &config.Config{
		AppEnv:            "test",
		RequestTimeout:    5 * time.Second,
		DBDriver:          "sqlite",
		DBName:            ":memory:",
		DBMaxIdleConns:    1,
		DBMaxOpenConns:    1,
		JWTSecretKey:      "test-secret",
		JWTIssuer:         "linkedin_clone",
		JWTExpirationTime: time.Hour,
		AdminEmails:       "admin@linkedin.com",
		PostMaxLength:     3000,
		TrendingLimit:     8,
	}
}

// New returns an Env with Redis. Adjust cfg before the first request if needed.
func New(t *testing.T) *Env {
	return NewWithConfig(t, Config(), true)
}

// NewWithConfig builds an Env; withRedis=false leaves the cache disabled.
func NewWithConfig(t *testing.T, cfg *config.Config, withRedis bool) *Env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.Init(cfg)
	require.NoError(t, err)

	env := &Env{}
	var rdb *cache.RedisCache
	if withRedis {
		env.Redis = miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: env.Redis.Addr()})
		rdb = cache.NewFromClient(client)
	}

	env.Svc = svc.New(cfg, conn, rdb)
	env.Router = router.Setup(env.Svc)
	t.Cleanup(env.Svc.Close)
	return env
}

// CreateUser stores an active member and returns it with a valid token.
func (e *Env) CreateUser(t *testing.T, name string, mutate ...func(*models.User)) (*models.User, string) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	u := &models.User{
		Name:       name,
		Email:      fmt.Sprintf("user%d@example.com", emailSeq.Add(1)),
		Password:   string(hashed),
		Skills:     []string{},
		IsActive:   true,
		Role:       models.RoleMember,
		LastActive: time.Now(),
	}
	for _, m := range mutate {
		m(u)
	}
	require.NoError(t, e.Svc.DB.Create(u).Error)

	return u, e.Token(t, u)
}

func (e *Env) Token(t *testing.T, u *models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(e.Svc.Config, u.ID, string(u.Role))
	require.NoError(t, err)
	return token
}

// Do performs a request against the router. body is JSON-encoded unless nil.
func (e *Env) Do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

func Decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func RequireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}

// Message extracts the "message" field of an error body.
func Message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return Decode[map[string]interface{}](t, w)["message"].(string)
}

