package blog

import (
	"context"
	"sync"
)

// ActionsFetcher carries the shared loading/error state for imperative blog
// actions (likes, reactions, create/update/delete) that are not bound to a
// single entity's view. Failed actions only set the error message; no local
// state existed to roll back.
type ActionsFetcher struct {
	mu     sync.Mutex
	svc    *Service
	closed bool

	loading bool
	errMsg  string
}

type ActionsState struct {
	Loading bool
	Err     string
}

func NewActionsFetcher(svc *Service) *ActionsFetcher {
	return &ActionsFetcher{svc: svc}
}

func (f *ActionsFetcher) begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	f.loading = true
	f.errMsg = ""
	return true
}

func (f *ActionsFetcher) finish(errMsg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.loading = false
	f.errMsg = errMsg
}

func (f *ActionsFetcher) LikeBlog(ctx context.Context, blogID string) bool {
	if !f.begin() {
		return false
	}
	env := f.svc.Like(ctx, blogID)
	if env.Success && env.Data != nil {
		f.finish("")
		return true
	}
	f.finish(failureMessage(env.Error, "Failed to like blog"))
	return false
}

func (f *ActionsFetcher) LikeComment(ctx context.Context, commentID string) bool {
	if !f.begin() {
		return false
	}
	env := f.svc.LikeComment(ctx, commentID)
	if env.Success && env.Data != nil {
		f.finish("")
		return true
	}
	f.finish(failureMessage(env.Error, "Failed to like comment"))
	return false
}

func (f *ActionsFetcher) React(ctx context.Context, blogID string, reaction Reaction) bool {
	if !f.begin() {
		return false
	}
	env := f.svc.React(ctx, blogID, reaction)
	if env.Success && env.Data != nil {
		f.finish("")
		return true
	}
	f.finish(failureMessage(env.Error, "Failed to like blog"))
	return false
}

func (f *ActionsFetcher) CreateBlog(ctx context.Context, payload CreateBlogPayload) *Blog {
	if !f.begin() {
		return nil
	}
	env := f.svc.Create(ctx, payload)
	if env.Success && env.Data != nil {
		f.finish("")
		return env.Data
	}
	f.finish(failureMessage(env.Error, "Failed to create blog"))
	return nil
}

func (f *ActionsFetcher) UpdateBlog(ctx context.Context, id string, payload UpdateBlogPayload) *Blog {
	if !f.begin() {
		return nil
	}
	env := f.svc.Update(ctx, id, payload)
	if env.Success && env.Data != nil {
		f.finish("")
		return env.Data
	}
	f.finish(failureMessage(env.Error, "Failed to update blog"))
	return nil
}

func (f *ActionsFetcher) DeleteBlog(ctx context.Context, id string) bool {
	if !f.begin() {
		return false
	}
	env := f.svc.Delete(ctx, id)
	if env.Success {
		f.finish("")
		return true
	}
	f.finish(failureMessage(env.Error, "Failed to delete blog"))
	return false
}

func (f *ActionsFetcher) ClearError() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errMsg = ""
}

func (f *ActionsFetcher) State() ActionsState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return ActionsState{Loading: f.loading, Err: f.errMsg}
}

func (f *ActionsFetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}
