package blog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/2beens/sitefront/internal/client"
)

// fakeBackend is an in-memory stand-in for the site API, serving the blog
// and comment endpoints the service talks to.
type fakeBackend struct {
	mu       sync.Mutex
	blogs    map[string]*Blog
	blogIDs  []string // insertion order, newest first
	comments map[string][]*Comment
	byID     map[string]*Comment
	nextID   int
	requests int

	server *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	b := &fakeBackend{
		blogs:    make(map[string]*Blog),
		comments: make(map[string][]*Comment),
		byID:     make(map[string]*Comment),
	}

	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			b.mu.Lock()
			b.requests++
			b.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})
	r.HandleFunc("/Blog", b.handleList).Methods("GET")
	r.HandleFunc("/Blog", b.handleCreate).Methods("POST")
	r.HandleFunc("/Blog/{id}", b.handleGet).Methods("GET")
	r.HandleFunc("/Blog/{id}", b.handleUpdate).Methods("PUT")
	r.HandleFunc("/Blog/{id}", b.handleDelete).Methods("DELETE")
	r.HandleFunc("/Blog/{id}/comments", b.handleComments).Methods("GET")
	r.HandleFunc("/Blog/{id}/like", b.handleLikeBlog).Methods("POST")
	r.HandleFunc("/Comment", b.handleCreateComment).Methods("POST")
	r.HandleFunc("/Comment/{id}/like", b.handleLikeComment).Methods("POST")

	b.server = httptest.NewServer(r)
	t.Cleanup(b.server.Close)
	return b
}

func (b *fakeBackend) service(t *testing.T) *Service {
	t.Helper()
	c, err := client.New(b.server.URL, b.server.Client(), nil)
	if err != nil {
		t.Fatalf("new client: %s", err)
	}
	return NewService(c)
}

func (b *fakeBackend) requestCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests
}

func (b *fakeBackend) addBlog(blog Blog) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	blog.ID = fmt.Sprintf("b%d", b.nextID)
	if blog.CreatedAt.IsZero() {
		blog.CreatedAt = time.Now()
	}
	b.blogs[blog.ID] = &blog
	b.blogIDs = append([]string{blog.ID}, b.blogIDs...)
	return blog.ID
}

func (b *fakeBackend) handleList(w http.ResponseWriter, req *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	category := req.URL.Query().Get("category")

	var all []Blog
	for _, id := range b.blogIDs {
		blog := b.blogs[id]
		if category != "" && blog.Category != category {
			continue
		}
		all = append(all, *blog)
	}

	total := len(all)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    all[start:end],
		"error":   nil,
		"pagination": map[string]any{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

func (b *fakeBackend) handleCreate(w http.ResponseWriter, req *http.Request) {
	var payload CreateBlogPayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid payload"})
		return
	}
	if payload.Title == "" || payload.Content == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "title and content are required"})
		return
	}

	id := b.addBlog(Blog{
		Title:       payload.Title,
		Content:     payload.Content,
		Excerpt:     payload.Excerpt,
		Category:    payload.Category,
		Tags:        payload.Tags,
		Image:       payload.Image,
		IsPublished: payload.IsPublished,
	})

	b.mu.Lock()
	created := *b.blogs[id]
	b.mu.Unlock()
	// bare entity, no envelope: exercises the wrap path
	writeJSON(w, http.StatusCreated, created)
}

func (b *fakeBackend) handleGet(w http.ResponseWriter, req *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	blog, ok := b.blogs[mux.Vars(req)["id"]]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Blog not found"})
		return
	}
	writeJSON(w, http.StatusOK, blog)
}

func (b *fakeBackend) handleUpdate(w http.ResponseWriter, req *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	blog, ok := b.blogs[mux.Vars(req)["id"]]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Blog not found"})
		return
	}
	var payload UpdateBlogPayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid payload"})
		return
	}
	if payload.Title != "" {
		blog.Title = payload.Title
	}
	if payload.Content != "" {
		blog.Content = payload.Content
	}
	if payload.Category != "" {
		blog.Category = payload.Category
	}
	blog.UpdatedAt = time.Now()
	writeJSON(w, http.StatusOK, blog)
}

func (b *fakeBackend) handleDelete(w http.ResponseWriter, req *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := mux.Vars(req)["id"]
	if _, ok := b.blogs[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Blog not found"})
		return
	}
	delete(b.blogs, id)
	for i, bid := range b.blogIDs {
		if bid == id {
			b.blogIDs = append(b.blogIDs[:i], b.blogIDs[i+1:]...)
			break
		}
	}
	// empty body: exercises the empty-body path
	w.WriteHeader(http.StatusOK)
}

func (b *fakeBackend) handleComments(w http.ResponseWriter, req *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := mux.Vars(req)["id"]
	if _, ok := b.blogs[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Blog not found"})
		return
	}
	comments := make([]Comment, 0, len(b.comments[id]))
	for _, c := range b.comments[id] {
		comments = append(comments, *c)
	}
	writeJSON(w, http.StatusOK, comments)
}

func (b *fakeBackend) handleLikeBlog(w http.ResponseWriter, req *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	blog, ok := b.blogs[mux.Vars(req)["id"]]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Blog not found"})
		return
	}
	blog.Likes++
	writeJSON(w, http.StatusOK, map[string]int{"likes": blog.Likes})
}

func (b *fakeBackend) handleCreateComment(w http.ResponseWriter, req *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var payload CreateCommentPayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid payload"})
		return
	}
	if _, ok := b.blogs[payload.BlogID]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Blog not found"})
		return
	}

	b.nextID++
	comment := &Comment{
		ID:        fmt.Sprintf("c%d", b.nextID),
		Content:   payload.Content,
		Author:    Author{Name: payload.Author},
		BlogID:    payload.BlogID,
		ParentID:  payload.ParentID,
		CreatedAt: time.Now(),
	}
	b.byID[comment.ID] = comment

	if payload.ParentID != "" {
		parent, ok := b.byID[payload.ParentID]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Parent comment not found"})
			return
		}
		parent.Replies = append(parent.Replies, *comment)
	} else {
		b.comments[payload.BlogID] = append([]*Comment{comment}, b.comments[payload.BlogID]...)
	}
	b.blogs[payload.BlogID].CommentsCount++

	writeJSON(w, http.StatusCreated, comment)
}

func (b *fakeBackend) handleLikeComment(w http.ResponseWriter, req *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	comment, ok := b.byID[mux.Vars(req)["id"]]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Comment not found"})
		return
	}
	comment.Likes++
	writeJSON(w, http.StatusOK, map[string]int{"likes": comment.Likes})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
