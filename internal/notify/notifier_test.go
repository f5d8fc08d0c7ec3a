package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Nir-Bhay/LinkedIn-clone/config"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/cache"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/db"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNotifier(t *testing.T) (*Notifier, *gorm.DB, *cache.RedisCache) {
	t.Helper()
	conn, err := db.Init(&config.Config{DBDriver: "sqlite", DBName: ":memory:", DBMaxIdleConns: 1, DBMaxOpenConns: 1})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	rdb := cache.NewFromClient(client)

	return NewNotifier(conn, rdb, nil), conn, rdb
}

func createUser(t *testing.T, conn *gorm.DB, name string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", Password: "x", IsActive: true, Role: models.RoleMember}
	require.NoError(t, conn.Create(u).Error)
	return u
}

func TestMessage(t *testing.T) {
	cases := map[models.NotificationType]string{
		models.NotificationLike:               "Ada liked your post",
		models.NotificationComment:            "Ada commented on your post",
		models.NotificationConnectionRequest:  "Ada sent you a connection request",
		models.NotificationConnectionAccepted: "Ada accepted your connection request",
		models.NotificationFollow:             "Ada started following you",
		models.NotificationPostMention:        "Ada mentioned you in a post",
	}
	for typ, want := range cases {
		assert.Equal(t, want, Message(typ, "Ada"))
	}
}

func TestNotifyStoresAndPublishes(t *testing.T) {
	n, conn, rdb := newNotifier(t)
	ada := createUser(t, conn, "ada")
	bob := createUser(t, conn, "bob")
	post := models.Post{AuthorID: ada.ID, Content: "hello", IsPublic: true}
	require.NoError(t, conn.Create(&post).Error)

	ctx := context.Background()
	sub, err := rdb.Subscribe(ctx, ChannelKey(ada.ID))
	require.NoError(t, err)
	defer sub.Close()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	created, err := n.Notify(ctx, models.NotificationMsg{
		RecipientID: ada.ID, SenderID: bob.ID, Type: models.NotificationComment, PostID: &post.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.False(t, created.IsRead)
	assert.Equal(t, "bob commented on your post", created.Message)

	var stored models.Notification
	require.NoError(t, conn.First(&stored, created.ID).Error)
	assert.Equal(t, ada.ID, stored.RecipientID)
	require.NotNil(t, stored.RelatedPostID)
	assert.Equal(t, post.ID, *stored.RelatedPostID)

	select {
	case msg := <-sub.Channel():
		var view models.NotificationView
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &view))
		assert.Equal(t, created.ID, view.ID)
		assert.Equal(t, "bob", view.Sender.Name)
		assert.Equal(t, "hello", view.RelatedPost.Content)
	case <-time.After(2 * time.Second):
		t.Fatal("no event published")
	}
}

func TestNotifyDropsSelfNotification(t *testing.T) {
	n, conn, _ := newNotifier(t)
	ada := createUser(t, conn, "ada")

	created, err := n.Notify(context.Background(), models.NotificationMsg{
		RecipientID: ada.ID, SenderID: ada.ID, Type: models.NotificationFollow,
	})
	assert.NoError(t, err)
	assert.Nil(t, created)

	var count int64
	require.NoError(t, conn.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNotifyValidatesReferences(t *testing.T) {
	n, conn, _ := newNotifier(t)
	ada := createUser(t, conn, "ada")
	ctx := context.Background()
	missingPost := uint(999)

	_, err := n.Notify(ctx, models.NotificationMsg{RecipientID: ada.ID, SenderID: 999, Type: models.NotificationFollow})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	_, err = n.Notify(ctx, models.NotificationMsg{RecipientID: 999, SenderID: ada.ID, Type: models.NotificationFollow})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	bob := createUser(t, conn, "bob")
	_, err = n.Notify(ctx, models.NotificationMsg{RecipientID: ada.ID, SenderID: bob.ID, Type: models.NotificationLike, PostID: &missingPost})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	_, err = n.Notify(ctx, models.NotificationMsg{RecipientID: ada.ID, SenderID: bob.ID, Type: "poke"})
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestHandleMessage(t *testing.T) {
	n, conn, _ := newNotifier(t)
	ada := createUser(t, conn, "ada")
	bob := createUser(t, conn, "bob")

	body, err := json.Marshal(models.NotificationMsg{RecipientID: ada.ID, SenderID: bob.ID, Type: models.NotificationFollow})
	require.NoError(t, err)
	require.NoError(t, n.HandleMessage(context.Background(), body))
	assert.Error(t, n.HandleMessage(context.Background(), []byte("{not json")))

	var count int64
	require.NoError(t, conn.Model(&models.Notification{}).Where("recipient_id = ?", ada.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDispatchWithoutQueueStoresInline(t *testing.T) {
	n, conn, _ := newNotifier(t)
	ada := createUser(t, conn, "ada")
	bob := createUser(t, conn, "bob")

	n.Dispatch(context.Background(), models.NotificationMsg{RecipientID: ada.ID, SenderID: bob.ID, Type: models.NotificationFollow})
	n.Dispatch(context.Background(), models.NotificationMsg{RecipientID: 12345, SenderID: bob.ID, Type: models.NotificationFollow})

	var count int64
	require.NoError(t, conn.Model(&models.Notification{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
