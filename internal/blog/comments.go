package blog

import (
	"context"
	"errors"
	"sync"
)

// CommentsFetcher binds a blog's comment tree to a loading/error/data view
// model. New top-level comments are optimistically prepended after a
// successful create; replies are left to the backend's tree, a refetch
// shows them under their parent.
type CommentsFetcher struct {
	mu     sync.Mutex
	svc    *Service
	blogID string
	seq    uint64
	closed bool

	comments []Comment
	loading  bool
	errMsg   string
}

type CommentsState struct {
	Comments []Comment
	Loading  bool
	Err      string
}

func NewCommentsFetcher(svc *Service, blogID string) *CommentsFetcher {
	return &CommentsFetcher{
		svc:      svc,
		blogID:   blogID,
		comments: []Comment{},
	}
}

func (f *CommentsFetcher) Fetch(ctx context.Context) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	if !validID(f.blogID) {
		f.loading = false
		f.errMsg = MsgBlogIDRequired
		f.mu.Unlock()
		return
	}
	f.seq++
	seq := f.seq
	f.loading = true
	f.errMsg = ""
	f.mu.Unlock()

	env := f.svc.Comments(ctx, f.blogID)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || seq != f.seq {
		return
	}
	f.loading = false
	if env.Success {
		f.comments = env.Data
		return
	}
	f.errMsg = failureMessage(env.Error, "Failed to fetch comments")
	f.comments = []Comment{}
}

// AddComment creates a comment or, with ParentID set, a reply. The created
// comment is returned so the caller can focus/scroll to it.
func (f *CommentsFetcher) AddComment(ctx context.Context, payload CreateCommentPayload) (*Comment, error) {
	if payload.BlogID == "" {
		payload.BlogID = f.blogID
	}

	env := f.svc.CreateComment(ctx, payload)
	if !env.Success || env.Data == nil {
		msg := failureMessage(env.Error, "Failed to add comment")
		f.mu.Lock()
		if !f.closed {
			f.errMsg = msg
		}
		f.mu.Unlock()
		return nil, errors.New(msg)
	}

	if payload.ParentID == "" {
		f.mu.Lock()
		if !f.closed {
			f.comments = append([]Comment{*env.Data}, f.comments...)
		}
		f.mu.Unlock()
	}
	return env.Data, nil
}

// LikeComment increments a comment's like counter and patches the matching
// top-level comment with the counter the server returned.
func (f *CommentsFetcher) LikeComment(ctx context.Context, commentID string) bool {
	env := f.svc.LikeComment(ctx, commentID)
	if !env.Success || env.Data == nil {
		f.mu.Lock()
		if !f.closed {
			f.errMsg = failureMessage(env.Error, "Failed to like comment")
		}
		f.mu.Unlock()
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return true
	}
	for i := range f.comments {
		if f.comments[i].ID == commentID {
			f.comments[i].Likes = env.Data.Likes
			break
		}
	}
	return true
}

func (f *CommentsFetcher) State() CommentsState {
	f.mu.Lock()
	defer f.mu.Unlock()
	comments := make([]Comment, len(f.comments))
	copy(comments, f.comments)
	return CommentsState{
		Comments: comments,
		Loading:  f.loading,
		Err:      f.errMsg,
	}
}

func (f *CommentsFetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}
