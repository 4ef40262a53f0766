package blog

import "time"

type Author struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	Bio    string `json:"bio,omitempty"`
}

type Blog struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content"`
	Category      string    `json:"category"`
	Author        *Author   `json:"author"`
	Image         string    `json:"image,omitempty"`
	Tags          []string  `json:"tags"`
	Likes         int       `json:"likes"`
	Views         int       `json:"views"`
	CommentsCount int       `json:"commentsCount"` // display hint only, may drift from the actual comment count
	ReadTime      int       `json:"readTime"`      // minutes
	IsPublished   bool      `json:"isPublished,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Comment is one node of the two-level comment tree: top-level comments
// carry their replies embedded, replies reference the parent via ParentID.
// The tree shape is owned by the backend and rendered as returned.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	BlogID    string    `json:"blogId,omitempty"`
	ParentID  string    `json:"parentId,omitempty"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
	Replies   []Comment `json:"replies,omitempty"`
}

type CreateBlogPayload struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Excerpt     string   `json:"excerpt,omitempty"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags,omitempty"`
	Image       string   `json:"image,omitempty"`
	IsPublished bool     `json:"isPublished,omitempty"`
}

type UpdateBlogPayload struct {
	Title       string   `json:"title,omitempty"`
	Content     string   `json:"content,omitempty"`
	Excerpt     string   `json:"excerpt,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Image       string   `json:"image,omitempty"`
	IsPublished bool     `json:"isPublished,omitempty"`
}

type CreateCommentPayload struct {
	Content  string `json:"content"`
	BlogID   string `json:"blogId"`
	Author   string `json:"author,omitempty"`
	ParentID string `json:"parentId,omitempty"`
}

// LikeResult is the counter value the backend returns from a like increment.
type LikeResult struct {
	Likes int `json:"likes"`
}

type Filters struct {
	Page     int
	Limit    int
	Category string
	Search   string
}

// Reaction is one of the six fixed emoji labels. The label is cosmetic:
// every reaction hits the same generic like increment on the backend.
type Reaction string

const (
	ReactionLike  Reaction = "like"
	ReactionLove  Reaction = "love"
	ReactionLaugh Reaction = "laugh"
	ReactionWow   Reaction = "wow"
	ReactionSad   Reaction = "sad"
	ReactionAngry Reaction = "angry"
)

var Reactions = []Reaction{
	ReactionLike,
	ReactionLove,
	ReactionLaugh,
	ReactionWow,
	ReactionSad,
	ReactionAngry,
}

func ValidReaction(r Reaction) bool {
	for _, known := range Reactions {
		if r == known {
			return true
		}
	}
	return false
}
