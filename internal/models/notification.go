package models

import "time"

type NotificationType string

const (
	NotificationLike               NotificationType = "like"
	NotificationComment            NotificationType = "comment"
	NotificationConnectionRequest  NotificationType = "connection_request"
	NotificationConnectionAccepted NotificationType = "connection_accepted"
	NotificationFollow             NotificationType = "follow"
	NotificationPostMention        NotificationType = "post_mention"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationLike, NotificationComment, NotificationConnectionRequest,
		NotificationConnectionAccepted, NotificationFollow, NotificationPostMention:
		return true
	}
	return false
}

type Notification struct {
	ID            uint             `gorm:"primaryKey"`
	RecipientID   uint             `gorm:"not null;index:idx_notification_recipient_read,priority:1;index:idx_notification_recipient_created,priority:1"`
	SenderID      uint             `gorm:"not null"`
	Sender        *User            `gorm:"foreignKey:SenderID"`
	Type          NotificationType `gorm:"size:32;not null"`
	Message       string           `gorm:"type:text;not null"`
	RelatedPostID *uint
	RelatedPost   *Post     `gorm:"foreignKey:RelatedPostID"`
	IsRead        bool      `gorm:"not null;default:false;index:idx_notification_recipient_read,priority:2"`
	CreatedAt     time.Time `gorm:"index:idx_notification_recipient_created,priority:2"`
	UpdatedAt     time.Time
}

type NotificationView struct {
	ID          uint             `json:"id"`
	Sender      UserBrief        `json:"sender"`
	Type        NotificationType `json:"type"`
	Message     string           `json:"message"`
	RelatedPost *RelatedPost     `json:"relatedPost,omitempty"`
	IsRead      bool             `json:"isRead"`
	CreatedAt   time.Time        `json:"createdAt"`
}

type RelatedPost struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
}

func (n *Notification) View() NotificationView {
	v := NotificationView{
		ID:        n.ID,
		Sender:    UserBrief{ID: n.SenderID},
		Type:      n.Type,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if n.Sender != nil {
		v.Sender = n.Sender.Brief()
	}
	if n.RelatedPost != nil {
		v.RelatedPost = &RelatedPost{ID: n.RelatedPost.ID, Content: n.RelatedPost.Content}
	}
	return v
}

// NotificationMsg is the notification_queue payload.
type NotificationMsg struct {
	RecipientID uint             `json:"recipient_id"`
	SenderID    uint             `json:"sender_id"`
	Type        NotificationType `json:"type"`
	PostID      *uint            `json:"post_id,omitempty"`
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Total       int64 `json:"total"`
}

// NotificationPage is one page of a recipient's notifications. UnreadCount
// covers all of the recipient's notifications, not only this page.
type NotificationPage struct {
	Notifications []NotificationView `json:"notifications"`
	UnreadCount   int64              `json:"unreadCount"`
	Pagination    Pagination         `json:"pagination"`
}
