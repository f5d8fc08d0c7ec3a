package models

import "time"

type Post struct {
	ID        uint      `gorm:"primaryKey"`
	AuthorID  uint      `gorm:"not null;index"`
	Author    *User     `gorm:"foreignKey:AuthorID"`
	Content   string    `gorm:"type:text;not null"`
	IsPublic  bool      `gorm:"index"`
	Likes     []User    `gorm:"many2many:post_likes;"`
	Comments  []Comment `gorm:"constraint:OnDelete:CASCADE;"`
	Shares    []User    `gorm:"many2many:post_shares;"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

type Comment struct {
	ID        uint   `gorm:"primaryKey"`
	PostID    uint   `gorm:"not null;index"`
	AuthorID  uint   `gorm:"not null"`
	Author    *User  `gorm:"foreignKey:AuthorID"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// PostView is the wire shape of a post. Author carries only public fields.
type PostView struct {
	ID            uint          `json:"id"`
	Author        UserBrief     `json:"author"`
	Content       string        `json:"content"`
	IsPublic      bool          `json:"isPublic"`
	Likes         []uint        `json:"likes"`
	Comments      []CommentView `json:"comments"`
	Shares        []uint        `json:"shares"`
	LikesCount    int           `json:"likesCount"`
	CommentsCount int           `json:"commentsCount"`
	SharesCount   int           `json:"sharesCount"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type CommentView struct {
	ID        uint      `json:"id"`
	Author    UserBrief `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p *Post) View() PostView {
	v := PostView{
		ID:        p.ID,
		Content:   p.Content,
		IsPublic:  p.IsPublic,
		Likes:     make([]uint, 0, len(p.Likes)),
		Comments:  make([]CommentView, 0, len(p.Comments)),
		Shares:    make([]uint, 0, len(p.Shares)),
		CreatedAt: p.CreatedAt,
	}
	if p.Author != nil {
		v.Author = UserBrief{ID: p.Author.ID, Name: p.Author.Name, Email: p.Author.Email}
	} else {
		v.Author = UserBrief{ID: p.AuthorID}
	}
	for _, u := range p.Likes {
		v.Likes = append(v.Likes, u.ID)
	}
	for _, u := range p.Shares {
		v.Shares = append(v.Shares, u.ID)
	}
	for _, c := range p.Comments {
		cv := CommentView{ID: c.ID, Text: c.Text, CreatedAt: c.CreatedAt, Author: UserBrief{ID: c.AuthorID}}
		if c.Author != nil {
			cv.Author = c.Author.Brief()
		}
		v.Comments = append(v.Comments, cv)
	}
	v.LikesCount = len(v.Likes)
	v.CommentsCount = len(v.Comments)
	v.SharesCount = len(v.Shares)
	return v
}

// Engagement is likes + comments + shares.
func (v PostView) Engagement() int {
	return v.LikesCount + v.CommentsCount + v.SharesCount
}
