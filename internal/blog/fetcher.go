package blog

import (
	"context"
	"sync"

	"github.com/2beens/sitefront/internal/api"
)

// MsgBlogIDRequired is reported by fetchers that need a blog id and got none.
// No network call is attempted in that case.
const MsgBlogIDRequired = "Blog ID is required"

// validID rejects empty ids and the literal "undefined" string, which is
// what a UI router hands over when the route param is missing.
func validID(id string) bool {
	return id != "" && id != "undefined"
}

func failureMessage(e *api.Error, fallback string) string {
	if e != nil && e.Message != "" {
		return e.Message
	}
	return fallback
}

// ListFetcher binds a blog list with filters and pagination to a
// loading/error/data view model. Safe for concurrent use; every request is
// stamped with a sequence number and a result only applies when no newer
// request has been issued since, so a slow response can never overwrite a
// fresher one.
type ListFetcher struct {
	mu      sync.Mutex
	svc     *Service
	filters Filters
	seq     uint64
	closed  bool

	blogs      []Blog
	loading    bool
	errMsg     string
	pagination api.Pagination
}

type ListState struct {
	Blogs      []Blog
	Loading    bool
	Err        string
	Pagination api.Pagination
}

func NewListFetcher(svc *Service, filters Filters) *ListFetcher {
	return &ListFetcher{
		svc:     svc,
		filters: filters,
		blogs:   []Blog{},
	}
}

// Fetch loads the list with the fetcher's base filters.
func (f *ListFetcher) Fetch(ctx context.Context) {
	f.fetch(ctx, f.filters)
}

// Refetch loads the list with the base filters overridden by the non-zero
// fields of override (pagination change, category/search change, retry).
func (f *ListFetcher) Refetch(ctx context.Context, override Filters) {
	merged := f.filters
	if override.Page > 0 {
		merged.Page = override.Page
	}
	if override.Limit > 0 {
		merged.Limit = override.Limit
	}
	if override.Category != "" {
		merged.Category = override.Category
	}
	if override.Search != "" {
		merged.Search = override.Search
	}
	f.fetch(ctx, merged)
}

func (f *ListFetcher) fetch(ctx context.Context, filters Filters) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.seq++
	seq := f.seq
	f.loading = true
	f.errMsg = ""
	f.mu.Unlock()

	page := f.svc.List(ctx, filters)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || seq != f.seq {
		// a newer request was issued while this one was in flight
		return
	}
	f.loading = false
	if page.Success {
		f.blogs = page.Data
		f.pagination = page.Pagination
		return
	}
	f.errMsg = failureMessage(page.Error, "Failed to fetch blogs")
	f.blogs = []Blog{}
}

func (f *ListFetcher) State() ListState {
	f.mu.Lock()
	defer f.mu.Unlock()
	blogs := make([]Blog, len(f.blogs))
	copy(blogs, f.blogs)
	return ListState{
		Blogs:      blogs,
		Loading:    f.loading,
		Err:        f.errMsg,
		Pagination: f.pagination,
	}
}

// Close marks the fetcher torn down: in-flight results are dropped and
// further fetches are no-ops.
func (f *ListFetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

// Fetcher binds a single blog to a loading/error/data view model.
type Fetcher struct {
	mu     sync.Mutex
	svc    *Service
	id     string
	seq    uint64
	closed bool

	blog    *Blog
	loading bool
	errMsg  string
}

type State struct {
	Blog    *Blog
	Loading bool
	Err     string
}

func NewFetcher(svc *Service, id string) *Fetcher {
	return &Fetcher{svc: svc, id: id}
}

func (f *Fetcher) Fetch(ctx context.Context) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	if !validID(f.id) {
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

	env := f.svc.Get(ctx, f.id)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || seq != f.seq {
		return
	}
	f.loading = false
	if env.Success && env.Data != nil {
		f.blog = env.Data
		return
	}
	f.errMsg = failureMessage(env.Error, "Blog not found")
	f.blog = nil
}

// Update pushes changed fields and patches the local blog with the
// server's version on success. Reports whether the update went through.
func (f *Fetcher) Update(ctx context.Context, payload UpdateBlogPayload) bool {
	f.mu.Lock()
	if f.closed || !validID(f.id) {
		f.mu.Unlock()
		return false
	}
	f.seq++
	seq := f.seq
	f.mu.Unlock()

	env := f.svc.Update(ctx, f.id, payload)

	f.mu.Lock()
	defer f.mu.Unlock()
	if env.Success && env.Data != nil {
		if !f.closed && seq == f.seq {
			f.blog = env.Data
		}
		return true
	}
	if !f.closed && seq == f.seq {
		f.errMsg = failureMessage(env.Error, "Failed to update blog")
	}
	return false
}

func (f *Fetcher) Delete(ctx context.Context) bool {
	f.mu.Lock()
	if f.closed || !validID(f.id) {
		f.mu.Unlock()
		return false
	}
	f.seq++
	seq := f.seq
	f.mu.Unlock()

	env := f.svc.Delete(ctx, f.id)

	f.mu.Lock()
	defer f.mu.Unlock()
	if env.Success {
		if !f.closed && seq == f.seq {
			f.blog = nil
		}
		return true
	}
	if !f.closed && seq == f.seq {
		f.errMsg = failureMessage(env.Error, "Failed to delete blog")
	}
	return false
}

func (f *Fetcher) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	var blogCopy *Blog
	if f.blog != nil {
		b := *f.blog
		blogCopy = &b
	}
	return State{
		Blog:    blogCopy,
		Loading: f.loading,
		Err:     f.errMsg,
	}
}

func (f *Fetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}
