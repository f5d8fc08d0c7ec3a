// Package notify creates notifications for engagement events.
//
// Handlers call Dispatch; with RabbitMQ available the event goes through
// notification_queue and is stored by the consumer, otherwise it is stored
// inline. Every stored notification is then published on the recipient's
// Redis channel.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/cache"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/mq"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const Queue = "notification_queue"

type Notifier struct {
	db     *gorm.DB
	cache  *cache.RedisCache
	rabbit *mq.RabbitMQ
}

func NewNotifier(db *gorm.DB, rdb *cache.RedisCache, rabbit *mq.RabbitMQ) *Notifier {
	return &Notifier{db: db, cache: rdb, rabbit: rabbit}
}

// ChannelKey is the Redis pub/sub channel carrying a user's new notifications.
func ChannelKey(recipientID uint) string {
	return fmt.Sprintf("notifications:%d", recipientID)
}

func Message(t models.NotificationType, senderName string) string {
	switch t {
	case models.NotificationLike:
		return senderName + " liked your post"
	case models.NotificationComment:
		return senderName + " commented on your post"
	case models.NotificationConnectionRequest:
		return senderName + " sent you a connection request"
	case models.NotificationConnectionAccepted:
		return senderName + " accepted your connection request"
	case models.NotificationFollow:
		return senderName + " started following you"
	case models.NotificationPostMention:
		return senderName + " mentioned you in a post"
	}
	return senderName + " interacted with you"
}

// Dispatch hands msg to the queue, falling back to an inline Notify. Failures
// are logged and never fail the action that triggered the event.
func (n *Notifier) Dispatch(ctx context.Context, msg models.NotificationMsg) {
	if msg.RecipientID == msg.SenderID {
		return
	}
	if n.rabbit != nil {
		body, err := json.Marshal(msg)
		if err == nil {
			if err = n.rabbit.Publish(ctx, Queue, body); err == nil {
				return
			}
		}
		zap.L().Warn("publish notification failed, storing inline", zap.Error(err))
	}
	if _, err := n.Notify(ctx, msg); err != nil {
		zap.L().Error("create notification failed",
			zap.Uint("recipient", msg.RecipientID),
			zap.String("type", string(msg.Type)),
			zap.Error(err))
	}
}

// Notify stores the notification described by msg. A self-notification is
// dropped and returns (nil, nil).
func (n *Notifier) Notify(ctx context.Context, msg models.NotificationMsg) (*models.Notification, error) {
	if !msg.Type.Valid() {
		return nil, fmt.Errorf("notification type %q: %w", msg.Type, utils.ErrValidation)
	}
	if msg.RecipientID == msg.SenderID {
		return nil, nil
	}

	db := n.db.WithContext(ctx)

	var sender models.User
	if err := db.Select("id, name, profile_picture, job_title").First(&sender, msg.SenderID).Error; err != nil {
		return nil, lookupErr("sender", err)
	}
	var recipients int64
	if err := db.Model(&models.User{}).Where("id = ?", msg.RecipientID).Count(&recipients).Error; err != nil {
		return nil, fmt.Errorf("count recipient: %w", err)
	}
	if recipients == 0 {
		return nil, fmt.Errorf("recipient %d: %w", msg.RecipientID, utils.ErrNotFound)
	}

	notification := models.Notification{
		RecipientID:   msg.RecipientID,
		SenderID:      msg.SenderID,
		Sender:        &sender,
		Type:          msg.Type,
		Message:       Message(msg.Type, sender.Name),
		RelatedPostID: msg.PostID,
	}
	if msg.PostID != nil {
		var post models.Post
		if err := db.Select("id, content").First(&post, *msg.PostID).Error; err != nil {
			return nil, lookupErr("related post", err)
		}
		notification.RelatedPost = &post
	}

	if err := db.Omit("Sender", "RelatedPost").Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	n.publish(ctx, &notification)
	return &notification, nil
}

// HandleMessage is the notification_queue consumer.
func (n *Notifier) HandleMessage(ctx context.Context, body []byte) error {
	var msg models.NotificationMsg
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("decode notification msg: %w", err)
	}
	_, err := n.Notify(ctx, msg)
	return err
}

func (n *Notifier) publish(ctx context.Context, notification *models.Notification) {
	payload, err := json.Marshal(notification.View())
	if err != nil {
		return
	}
	if err := n.cache.Publish(ctx, ChannelKey(notification.RecipientID), payload); err != nil && !errors.Is(err, cache.ErrDisabled) {
		zap.L().Warn("publish notification event failed", zap.Uint("recipient", notification.RecipientID), zap.Error(err))
	}
}

func lookupErr(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, utils.ErrNotFound)
	}
	return fmt.Errorf("load %s: %w", what, err)
}
