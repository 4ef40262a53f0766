// Package blog implements the blog vertical of the site API: the resource
// service, the comment/reaction sub-model and the stateful fetchers the UI
// binds to. All service calls resolve to an envelope, never to a Go error.
package blog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/2beens/sitefront/internal/api"
	"github.com/2beens/sitefront/internal/client"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type Service struct {
	http *client.Client
}

func NewService(httpClient *client.Client) *Service {
	return &Service{http: httpClient}
}

func (f Filters) query() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

func (f Filters) fallbackPagination() api.Pagination {
	p := api.Pagination{Page: f.Page, Limit: f.Limit}
	if p.Page <= 0 {
		p.Page = defaultPage
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	return p
}

func (s *Service) List(ctx context.Context, filters Filters) api.Paginated[[]Blog] {
	resp, err := s.http.Get(ctx, "/Blog", &client.RequestOptions{Query: filters.query()})
	return api.NormalizePage(resp, err, api.Defaults[[]Blog]{
		SuccessMessage: "Blogs fetched successfully",
		FailureMessage: "Failed to fetch blogs",
		Empty:          []Blog{},
	}, filters.fallbackPagination())
}

func (s *Service) Get(ctx context.Context, id string) api.Envelope[*Blog] {
	resp, err := s.http.Get(ctx, "/Blog/"+url.PathEscape(id), nil)
	return api.Normalize(resp, err, api.Defaults[*Blog]{
		SuccessMessage: "Blog fetched successfully",
		FailureMessage: "Failed to fetch blog",
	})
}

func (s *Service) Create(ctx context.Context, payload CreateBlogPayload) api.Envelope[*Blog] {
	resp, err := s.http.Post(ctx, "/Blog", payload, nil)
	return api.Normalize(resp, err, api.Defaults[*Blog]{
		SuccessMessage: "Blog created successfully",
		FailureMessage: "Failed to create blog",
	})
}

func (s *Service) Update(ctx context.Context, id string, payload UpdateBlogPayload) api.Envelope[*Blog] {
	resp, err := s.http.Put(ctx, "/Blog/"+url.PathEscape(id), payload, nil)
	return api.Normalize(resp, err, api.Defaults[*Blog]{
		SuccessMessage: "Blog updated successfully",
		FailureMessage: "Failed to update blog",
	})
}

func (s *Service) Delete(ctx context.Context, id string) api.Envelope[any] {
	resp, err := s.http.Delete(ctx, "/Blog/"+url.PathEscape(id), nil)
	return api.Normalize(resp, err, api.Defaults[any]{
		SuccessMessage: "Blog deleted successfully",
		FailureMessage: "Failed to delete blog",
	})
}

func (s *Service) Comments(ctx context.Context, blogID string) api.Envelope[[]Comment] {
	resp, err := s.http.Get(ctx, "/Blog/"+url.PathEscape(blogID)+"/comments", nil)
	return api.Normalize(resp, err, api.Defaults[[]Comment]{
		SuccessMessage: "Comments fetched successfully",
		FailureMessage: "Failed to fetch comments",
		Empty:          []Comment{},
	})
}

// CreateComment posts both top-level comments and replies: a non-empty
// ParentID makes the backend attach the new comment to the parent's replies.
func (s *Service) CreateComment(ctx context.Context, payload CreateCommentPayload) api.Envelope[*Comment] {
	resp, err := s.http.Post(ctx, "/Comment", payload, nil)
	return api.Normalize(resp, err, api.Defaults[*Comment]{
		SuccessMessage: "Comment created successfully",
		FailureMessage: "Failed to create comment",
	})
}

// Like increments the blog's like counter. Not idempotent: liking twice
// increments twice, there is no de-duplication on either side.
func (s *Service) Like(ctx context.Context, blogID string) api.Envelope[*LikeResult] {
	resp, err := s.http.Post(ctx, "/Blog/"+url.PathEscape(blogID)+"/like", nil, nil)
	return api.Normalize(resp, err, api.Defaults[*LikeResult]{
		SuccessMessage: "Blog liked successfully",
		FailureMessage: "Failed to like blog",
	})
}

func (s *Service) LikeComment(ctx context.Context, commentID string) api.Envelope[*LikeResult] {
	resp, err := s.http.Post(ctx, "/Comment/"+url.PathEscape(commentID)+"/like", nil, nil)
	return api.Normalize(resp, err, api.Defaults[*LikeResult]{
		SuccessMessage: "Comment liked successfully",
		FailureMessage: "Failed to like comment",
	})
}

// React records one of the six reactions on a blog. The label only gates
// the call; the stored effect is the same generic increment as Like.
func (s *Service) React(ctx context.Context, blogID string, reaction Reaction) api.Envelope[*LikeResult] {
	if !ValidReaction(reaction) {
		msg := fmt.Sprintf("unknown reaction: %s", reaction)
		return api.Envelope[*LikeResult]{
			Error:   &api.Error{Message: msg, Code: "INVALID_REACTION"},
			Message: msg,
		}
	}
	return s.Like(ctx, blogID)
}
