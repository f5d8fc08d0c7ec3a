package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Nir-Bhay/LinkedIn-clone/config"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/cache"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/db"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		DBDriver:          "sqlite",
		DBName:            ":memory:",
		DBMaxIdleConns:    1,
		DBMaxOpenConns:    1,
		JWTSecretKey:      "test-secret",
		JWTIssuer:         "linkedin_clone",
		JWTExpirationTime: time.Hour,
	}
}

func setup(t *testing.T) (*config.Config, *gorm.DB, *cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	cfg := testConfig()
	conn, err := db.Init(cfg)
	require.NoError(t, err)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cfg, conn, cache.NewFromClient(client), mr
}

func perform(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBearerToken(t *testing.T) {
	_, err := bearerToken("")
	assert.ErrorIs(t, err, errNoToken)

	for _, h := range []string{"Basic abc", "Bearer", "Bearer   ", "bearer abc"} {
		_, err := bearerToken(h)
		assert.Error(t, err, h)
	}

	tok, err := bearerToken("Bearer abc.def ")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", tok)
}

func TestRequiredSetsPrincipalAndTouchesLastActive(t *testing.T) {
	cfg, conn, rdb, mr := setup(t)
	u := models.User{Name: "Ada", Email: "ada@example.com", Password: "x", IsActive: true, Role: models.RoleMember}
	require.NoError(t, conn.Create(&u).Error)
	token, err := utils.GenerateToken(cfg, u.ID, string(u.Role))
	require.NoError(t, err)

	r := gin.New()
	r.GET("/", NewAuthenticator(cfg, conn, rdb).Required(), func(c *gin.Context) {
		id, err := utils.GetUserID(c)
		require.NoError(t, err)
		principal, err := utils.GetPrincipal(c)
		require.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"id": id, "name": principal.Name})
	})

	w := perform(r, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Ada"}`, w.Body.String())
	assert.True(t, mr.Exists("user:active:1"))

	var reloaded models.User
	require.NoError(t, conn.First(&reloaded, u.ID).Error)
	assert.False(t, reloaded.LastActive.IsZero())

	assert.Equal(t, http.StatusUnauthorized, perform(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, token+"x").Code)

	other := *cfg
	other.JWTSecretKey = "another-secret"
	forged, err := utils.GenerateToken(&other, u.ID, string(u.Role))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, perform(r, forged).Code)
}

func TestRequiredRejectsRevokedAndUnknownUsers(t *testing.T) {
	cfg, conn, rdb, _ := setup(t)
	u := models.User{Name: "Ada", Email: "ada@example.com", Password: "x", IsActive: true, Role: models.RoleMember}
	require.NoError(t, conn.Create(&u).Error)

	r := gin.New()
	r.GET("/", NewAuthenticator(cfg, conn, rdb).Required(), func(c *gin.Context) { c.Status(http.StatusOK) })

	token, err := utils.GenerateToken(cfg, u.ID, string(u.Role))
	require.NoError(t, err)
	claims, err := utils.ParseToken(cfg, token)
	require.NoError(t, err)
	require.NoError(t, utils.AddTokenToBlacklist(context.Background(), rdb, claims))
	assert.Equal(t, http.StatusUnauthorized, perform(r, token).Code)

	ghost, err := utils.GenerateToken(cfg, 999, string(models.RoleMember))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, perform(r, ghost).Code)
}

func TestOptionalLetsAnonymousThrough(t *testing.T) {
	cfg, conn, rdb, _ := setup(t)

	r := gin.New()
	r.GET("/", NewAuthenticator(cfg, conn, rdb).Optional(), func(c *gin.Context) {
		_, err := utils.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"anonymous": err != nil})
	})

	assert.JSONEq(t, `{"anonymous":true}`, perform(r, "").Body.String())
	assert.JSONEq(t, `{"anonymous":true}`, perform(r, "bogus").Body.String())
}

func TestRequireAdmin(t *testing.T) {
	handler := func(role models.Role) *httptest.ResponseRecorder {
		r := gin.New()
		r.GET("/", func(c *gin.Context) {
			c.Set(utils.ContextUserKey, &models.User{ID: 1, Role: role})
		}, RequireAdmin(), func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"secret": 42}) })
		return perform(r, "")
	}

	w := handler(models.RoleMember)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"Admin access required"}`, w.Body.String())
	assert.Equal(t, http.StatusOK, handler(models.RoleAdmin).Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	_, _, rdb, mr := setup(t)

	r := gin.New()
	r.GET("/", func(c *gin.Context) { c.Set(utils.ContextUserIDKey, uint(7)) },
		RateLimitMiddleware(rdb, "search", 2, time.Minute),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(r, "").Code)
	assert.Equal(t, http.StatusOK, perform(r, "").Code)
	w := perform(r, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"message":"Too many requests, please try again later"}`, w.Body.String())

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, perform(r, "").Code)
}

func TestRateLimitFailsOpenWithoutRedis(t *testing.T) {
	r := gin.New()
	r.GET("/", func(c *gin.Context) { c.Set(utils.ContextUserIDKey, uint(7)) },
		RateLimitMiddleware(nil, "search", 1, time.Minute),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, perform(r, "").Code)
	}
}

func TestTimeoutSetsDeadline(t *testing.T) {
	r := gin.New()
	r.GET("/", Timeout(time.Second), func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		c.JSON(http.StatusOK, gin.H{"deadline": ok})
	})
	assert.JSONEq(t, `{"deadline":true}`, perform(r, "").Body.String())
}
