package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
)

// ListPosts returns the feed. token may be empty.
func (c *Client) ListPosts(ctx context.Context, token string) ([]models.PostView, error) {
	var out []models.PostView
	err := c.do(ctx, http.MethodGet, "/api/posts", nil, token, nil, &out)
	return out, err
}

// ListUserPosts returns one author's posts. token may be empty.
func (c *Client) ListUserPosts(ctx context.Context, token string, userID uint) ([]models.PostView, error) {
	var out []models.PostView
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/posts/user/%d", userID), nil, token, nil, &out)
	return out, err
}

// CreatePost publishes content. A nil isPublic means public.
func (c *Client) CreatePost(ctx context.Context, token, content string, isPublic *bool) (*models.PostView, error) {
	in := map[string]interface{}{"content": content}
	if isPublic != nil {
		in["isPublic"] = *isPublic
	}
	var out models.PostView
	if err := c.do(ctx, http.MethodPost, "/api/posts", nil, token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LikePost toggles the caller's like.
func (c *Client) LikePost(ctx context.Context, token string, postID uint) (*LikeResult, error) {
	var out LikeResult
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", postID), nil, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CommentPost(ctx context.Context, token string, postID uint, text string) (*models.CommentView, error) {
	var out models.CommentView
	in := map[string]string{"text": text}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/comment", postID), nil, token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SharePost(ctx context.Context, token string, postID uint) (*ShareResult, error) {
	var out ShareResult
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/share", postID), nil, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
