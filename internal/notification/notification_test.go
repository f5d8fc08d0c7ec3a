package notification_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, env *testutil.Env, recipient, sender *models.User, n int) []uint {
	t.Helper()
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		created, err := env.Svc.Notifier.Notify(context.Background(), models.NotificationMsg{
			RecipientID: recipient.ID,
			SenderID:    sender.ID,
			Type:        models.NotificationFollow,
		})
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}
	return ids
}

func unreadInDB(t *testing.T, env *testutil.Env, recipientID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, env.Svc.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).Count(&n).Error)
	return n
}

func TestListReturnsOwnNotificationsNewestFirst(t *testing.T) {
	env := testutil.New(t)
	ada, adaToken := env.CreateUser(t, "Ada")
	bob, _ := env.CreateUser(t, "Bob")
	ids := seed(t, env, ada, bob, 3)
	seed(t, env, bob, ada, 2)

	w := env.Do(t, http.MethodGet, "/api/notifications", adaToken, nil)
	testutil.RequireStatus(t, w, http.StatusOK)
	page := testutil.Decode[models.NotificationPage](t, w)

	require.Len(t, page.Notifications, 3)
	assert.Equal(t, []uint{ids[2], ids[1], ids[0]},
		[]uint{page.Notifications[0].ID, page.Notifications[1].ID, page.Notifications[2].ID})
	assert.Equal(t, "Bob", page.Notifications[0].Sender.Name)
	assert.Equal(t, "Bob started following you", page.Notifications[0].Message)
	assert.EqualValues(t, 3, page.UnreadCount)
	assert.Equal(t, models.Pagination{CurrentPage: 1, TotalPages: 1, Total: 3}, page.Pagination)
}

func TestUnreadCountIsIndependentOfPaging(t *testing.T) {
	env := testutil.New(t)
	ada, adaToken := env.CreateUser(t, "Ada")
	bob, _ := env.CreateUser(t, "Bob")
	ids := seed(t, env, ada, bob, 7)

	// mark the newest two read so the first page holds no unread items
	testutil.RequireStatus(t, env.Do(t, http.MethodPut, fmt.Sprintf("/api/notifications/%d/read", ids[6]), adaToken, nil), http.StatusOK)
	testutil.RequireStatus(t, env.Do(t, http.MethodPut, fmt.Sprintf("/api/notifications/%d/read", ids[5]), adaToken, nil), http.StatusOK)

	want := unreadInDB(t, env, ada.ID)
	require.EqualValues(t, 5, want)

	for _, q := range []string{"?page=1&limit=2", "?page=2&limit=3", "?page=9&limit=1", "?limit=100"} {
		w := env.Do(t, http.MethodGet, "/api/notifications"+q, adaToken, nil)
		testutil.RequireStatus(t, w, http.StatusOK)
		page := testutil.Decode[models.NotificationPage](t, w)
		assert.Equal(t, want, page.UnreadCount, q)
		assert.EqualValues(t, 7, page.Pagination.Total, q)
	}

	page := testutil.Decode[models.NotificationPage](t, env.Do(t, http.MethodGet, "/api/notifications?page=2&limit=3", adaToken, nil))
	assert.Equal(t, 2, page.Pagination.CurrentPage)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	require.Len(t, page.Notifications, 3)
	assert.Equal(t, ids[3], page.Notifications[0].ID)
}

func TestListEmbedsRelatedPost(t *testing.T) {
	env := testutil.New(t)
	ada, adaToken := env.CreateUser(t, "Ada")
	bob, _ := env.CreateUser(t, "Bob")
	p := models.Post{AuthorID: ada.ID, Content: "my post", IsPublic: true}
	require.NoError(t, env.Svc.DB.Create(&p).Error)

	_, err := env.Svc.Notifier.Notify(context.Background(), models.NotificationMsg{
		RecipientID: ada.ID, SenderID: bob.ID, Type: models.NotificationLike, PostID: &p.ID,
	})
	require.NoError(t, err)

	page := testutil.Decode[models.NotificationPage](t, env.Do(t, http.MethodGet, "/api/notifications", adaToken, nil))
	require.Len(t, page.Notifications, 1)
	require.NotNil(t, page.Notifications[0].RelatedPost)
	assert.Equal(t, models.RelatedPost{ID: p.ID, Content: "my post"}, *page.Notifications[0].RelatedPost)
}

func TestMarkReadByNonOwnerIsNotFound(t *testing.T) {
	env := testutil.New(t)
	ada, _ := env.CreateUser(t, "Ada")
	bob, bobToken := env.CreateUser(t, "Bob")
	ids := seed(t, env, ada, bob, 1)

	for _, path := range []string{
		fmt.Sprintf("/api/notifications/%d/read", ids[0]),
		"/api/notifications/424242/read",
		"/api/notifications/abc/read",
	} {
		w := env.Do(t, http.MethodPut, path, bobToken, nil)
		testutil.RequireStatus(t, w, http.StatusNotFound)
		assert.Equal(t, "Notification not found", testutil.Message(t, w))
	}

	var n models.Notification
	require.NoError(t, env.Svc.DB.First(&n, ids[0]).Error)
	assert.False(t, n.IsRead)
}

func TestMarkAllReadIsIdempotent(t *testing.T) {
	env := testutil.New(t)
	ada, adaToken := env.CreateUser(t, "Ada")
	bob, _ := env.CreateUser(t, "Bob")
	seed(t, env, ada, bob, 4)
	seed(t, env, bob, ada, 2)

	type markAll struct {
		Message string `json:"message"`
		Updated int64  `json:"updated"`
	}

	w := env.Do(t, http.MethodPut, "/api/notifications/mark-all-read", adaToken, nil)
	testutil.RequireStatus(t, w, http.StatusOK)
	assert.EqualValues(t, 4, testutil.Decode[markAll](t, w).Updated)
	assert.Zero(t, unreadInDB(t, env, ada.ID))

	w = env.Do(t, http.MethodPut, "/api/notifications/mark-all-read", adaToken, nil)
	testutil.RequireStatus(t, w, http.StatusOK)
	assert.Zero(t, testutil.Decode[markAll](t, w).Updated)
	assert.Zero(t, unreadInDB(t, env, ada.ID))

	// other recipients are untouched
	assert.EqualValues(t, 2, unreadInDB(t, env, bob.ID))
}

func TestDeleteIsOwnershipScoped(t *testing.T) {
	env := testutil.New(t)
	ada, adaToken := env.CreateUser(t, "Ada")
	bob, bobToken := env.CreateUser(t, "Bob")
	ids := seed(t, env, ada, bob, 1)
	path := fmt.Sprintf("/api/notifications/%d", ids[0])

	testutil.RequireStatus(t, env.Do(t, http.MethodDelete, path, bobToken, nil), http.StatusNotFound)
	testutil.RequireStatus(t, env.Do(t, http.MethodDelete, path, adaToken, nil), http.StatusOK)
	testutil.RequireStatus(t, env.Do(t, http.MethodDelete, path, adaToken, nil), http.StatusNotFound)

	var count int64
	require.NoError(t, env.Svc.DB.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNotificationRoutesRequireAuth(t *testing.T) {
	env := testutil.New(t)
	testutil.RequireStatus(t, env.Do(t, http.MethodGet, "/api/notifications", "", nil), http.StatusUnauthorized)
	testutil.RequireStatus(t, env.Do(t, http.MethodPut, "/api/notifications/mark-all-read", "", nil), http.StatusUnauthorized)
}

func TestStreamNeedsRedis(t *testing.T) {
	env := testutil.NewWithConfig(t, testutil.Config(), false)
	_, token := env.CreateUser(t, "Ada")
	testutil.RequireStatus(t, env.Do(t, http.MethodGet, "/api/notifications/stream", token, nil), http.StatusServiceUnavailable)
}
