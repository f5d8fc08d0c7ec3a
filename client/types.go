package client

import (
	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio,omitempty"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// ProfileUpdate fields left nil are not changed.
type ProfileUpdate struct {
	Name     *string   `json:"name,omitempty"`
	Bio      *string   `json:"bio,omitempty"`
	JobTitle *string   `json:"jobTitle,omitempty"`
	Company  *string   `json:"company,omitempty"`
	Location *string   `json:"location,omitempty"`
	Skills   *[]string `json:"skills,omitempty"`
}

type Profile struct {
	models.User
	ConnectionCount int64 `json:"connectionCount"`
	FollowerCount   int64 `json:"followerCount"`
	FollowingCount  int64 `json:"followingCount"`
	IsFollowing     bool  `json:"isFollowing"`
}

type ConnectionEntry struct {
	ID        uint                    `json:"id"`
	Peer      models.UserBrief        `json:"peer"`
	Status    models.ConnectionStatus `json:"status"`
	Incoming  bool                    `json:"incoming"`
	CreatedAt string                  `json:"createdAt"`
}

type LikeResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likesCount"`
}

type ShareResult struct {
	Shared      bool  `json:"shared"`
	SharesCount int64 `json:"sharesCount"`
}

// SearchResults leaves the category that was not requested nil.
type SearchResults struct {
	Users []models.UserBrief `json:"users"`
	Posts []models.PostView  `json:"posts"`
}

type TrendingQuery struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

type message struct {
	Message string `json:"message"`
	Updated int64  `json:"updated"`
}
