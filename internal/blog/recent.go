package blog

import (
	"context"
	"sync"
)

// RecentFetcher loads the latest blogs for the "recent posts" sidebar,
// leaving out the blog currently being read.
type RecentFetcher struct {
	mu            sync.Mutex
	svc           *Service
	currentBlogID string
	limit         int
	seq           uint64
	closed        bool

	blogs   []Blog
	loading bool
	errMsg  string
}

const defaultRecentLimit = 3

func NewRecentFetcher(svc *Service, currentBlogID string, limit int) *RecentFetcher {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return &RecentFetcher{
		svc:           svc,
		currentBlogID: currentBlogID,
		limit:         limit,
		blogs:         []Blog{},
	}
}

func (f *RecentFetcher) Fetch(ctx context.Context) {
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

	// ask for one extra in case the current blog is among the results
	page := f.svc.List(ctx, Filters{Page: 1, Limit: f.limit + 1})

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || seq != f.seq {
		return
	}
	f.loading = false
	if !page.Success {
		f.errMsg = failureMessage(page.Error, "Failed to fetch recent blogs")
		f.blogs = []Blog{}
		return
	}

	recent := make([]Blog, 0, f.limit)
	for _, b := range page.Data {
		if f.currentBlogID != "" && b.ID == f.currentBlogID {
			continue
		}
		recent = append(recent, b)
		if len(recent) == f.limit {
			break
		}
	}
	f.blogs = recent
}

func (f *RecentFetcher) State() ListState {
	f.mu.Lock()
	defer f.mu.Unlock()
	blogs := make([]Blog, len(f.blogs))
	copy(blogs, f.blogs)
	return ListState{Blogs: blogs, Loading: f.loading, Err: f.errMsg}
}

func (f *RecentFetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}
