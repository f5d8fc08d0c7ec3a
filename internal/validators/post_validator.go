package validators

// CreatePostRequest leaves emptiness checks to the handler, which trims first.
type CreatePostRequest struct {
	Content  string `json:"content"`
	IsPublic *bool  `json:"isPublic"`
}

type CommentRequest struct {
	Text string `json:"text"`
}
