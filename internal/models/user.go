package models

import "time"

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"size:100;not null"`
	Email          string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password       string    `json:"-" gorm:"not null"`
	Bio            string    `json:"bio" gorm:"type:text"`
	JobTitle       string    `json:"jobTitle" gorm:"size:100"`
	Company        string    `json:"company" gorm:"size:100"`
	Location       string    `json:"location" gorm:"size:100"`
	ProfilePicture string    `json:"profilePicture" gorm:"size:512"`
	Skills         []string  `json:"skills" gorm:"serializer:json;type:text"`
	ProfileViews   int       `json:"profileViews" gorm:"not null;default:0"`
	IsActive       bool      `json:"isActive" gorm:"index"`
	Role           Role      `json:"role" gorm:"size:16;not null;default:member"`
	LastActive     time.Time `json:"lastActive"`
	CreatedAt      time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user may read platform-wide analytics.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) Brief() UserBrief {
	return UserBrief{
		ID:             u.ID,
		Name:           u.Name,
		ProfilePicture: u.ProfilePicture,
		JobTitle:       u.JobTitle,
	}
}

// UserBrief is the public projection embedded in posts, comments and notifications.
type UserBrief struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	JobTitle       string `json:"jobTitle,omitempty"`
	Company        string `json:"company,omitempty"`
	Location       string `json:"location,omitempty"`
}

type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
)

// Connection is one relationship between two users. An accepted row belongs
// to the connection list of both the requester and the addressee.
type Connection struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	RequesterID uint             `json:"requesterId" gorm:"not null;uniqueIndex:idx_connection_pair,priority:1"`
	AddresseeID uint             `json:"addresseeId" gorm:"not null;uniqueIndex:idx_connection_pair,priority:2;index"`
	Status      ConnectionStatus `json:"status" gorm:"size:16;not null;index"`
	Requester   *User            `json:"-" gorm:"foreignKey:RequesterID"`
	Addressee   *User            `json:"-" gorm:"foreignKey:AddresseeID"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Peer returns the id of the other side of the connection as seen by userID.
func (c *Connection) Peer(userID uint) uint {
	if c.RequesterID == userID {
		return c.AddresseeID
	}
	return c.RequesterID
}

type UserFollow struct {
	FollowerID uint      `gorm:"primaryKey"`
	FollowedID uint      `gorm:"primaryKey;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

type PasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}
