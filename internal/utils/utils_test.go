package utils

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Nir-Bhay/LinkedIn-clone/config"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:      "test-secret",
		JWTIssuer:         "test",
		JWTExpirationTime: time.Hour,
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateToken(cfg, 42, "member")
	require.NoError(t, err)

	claims, err := ParseToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "member", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestParseTokenRejectsBadTokens(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateToken(cfg, 1, "member")
	require.NoError(t, err)

	other := *cfg
	other.JWTSecretKey = "another-secret"
	_, err = ParseToken(&other, token)
	assert.Error(t, err, "wrong signing key")

	other = *cfg
	other.JWTIssuer = "someone-else"
	_, err = ParseToken(&other, token)
	assert.Error(t, err, "wrong issuer")

	expired := *cfg
	expired.JWTExpirationTime = -time.Minute
	old, err := GenerateToken(&expired, 1, "member")
	require.NoError(t, err)
	_, err = ParseToken(cfg, old)
	assert.Error(t, err, "expired")

	_, err = ParseToken(cfg, "not-a-jwt")
	assert.Error(t, err)
}

func TestTokenBlacklist(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()
	cfg := testConfig()

	token, err := GenerateToken(cfg, 7, "member")
	require.NoError(t, err)
	claims, err := ParseToken(cfg, token)
	require.NoError(t, err)

	listed, err := IsTokenBlacklisted(ctx, rdb, claims)
	require.NoError(t, err)
	assert.False(t, listed)

	require.NoError(t, AddTokenToBlacklist(ctx, rdb, claims))

	listed, err = IsTokenBlacklisted(ctx, rdb, claims)
	require.NoError(t, err)
	assert.True(t, listed)
	assert.Greater(t, mr.TTL("blacklist:"+claims.ID), 50*time.Minute)

	_, err = IsTokenBlacklisted(ctx, nil, claims)
	assert.ErrorIs(t, err, cache.ErrDisabled)
}

func TestStatusOf(t *testing.T) {
	cases := map[error]int{
		fmt.Errorf("content: %w", ErrValidation): http.StatusBadRequest,
		ErrUnauthorized:                          http.StatusUnauthorized,
		fmt.Errorf("admin: %w", ErrForbidden):    http.StatusForbidden,
		fmt.Errorf("post 3: %w", ErrNotFound):    http.StatusNotFound,
		ErrConflict:                              http.StatusConflict,
		fmt.Errorf("boom"):                       http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, StatusOf(err), err.Error())
	}
}

func TestPage(t *testing.T) {
	cases := []struct {
		query     string
		page, lim int
	}{
		{"", 1, 20},
		{"page=3&limit=5", 3, 5},
		{"page=0&limit=-1", 1, 20},
		{"page=abc&limit=500", 1, 100},
		{"page=9000000000000000000&limit=100", 21474837, 100},
		{"page=9000000000000000000&limit=5", 21474837, 5},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)

		page, limit := Page(c, 20, 100)
		assert.Equal(t, tc.page, page, tc.query)
		assert.Equal(t, tc.lim, limit, tc.query)
		assert.GreaterOrEqual(t, Offset(page, limit), 0, tc.query)
		assert.LessOrEqual(t, Offset(page, limit), math.MaxInt32, tc.query)
	}

	assert.Equal(t, 0, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 40, Offset(3, 20))
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%react%", ContainsPattern("React"))
	assert.Equal(t, "%100!%%", ContainsPattern("100%"))
	assert.Equal(t, "%a!_b!!%", ContainsPattern("a_b!"))
}
