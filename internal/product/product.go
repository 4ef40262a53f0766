// Package product covers the AI product catalog CRUD. This service family
// returns plain Go errors instead of resolving to an envelope; the split
// mirrors the two error contracts the backend's clients always had.
package product

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/2beens/sitefront/internal/api"
	"github.com/2beens/sitefront/internal/client"
)

const basePath = "/Ai"

type Product struct {
	ID           string    `json:"id,omitempty"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image,omitempty"`
	Price        float64   `json:"price,omitempty"`
	Link         string    `json:"link,omitempty"`
	DownloadLink string    `json:"downloadLink,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

type Service struct {
	http *client.Client
}

func NewService(httpClient *client.Client) *Service {
	return &Service{http: httpClient}
}

func (s *Service) List(ctx context.Context, filters url.Values) ([]Product, error) {
	var opts *client.RequestOptions
	if len(filters) > 0 {
		opts = &client.RequestOptions{Query: filters}
	}
	resp, err := s.http.Get(ctx, basePath, opts)
	if err != nil {
		return nil, translate(err)
	}
	env := api.Normalize(resp, nil, api.Defaults[[]Product]{
		FailureMessage: "Failed to fetch products",
		Empty:          []Product{},
	})
	if !env.Success {
		return nil, envelopeError(env.Error, "Failed to fetch products")
	}
	return env.Data, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	resp, err := s.http.Get(ctx, basePath+"/"+url.PathEscape(id), nil)
	return single(resp, err, "Failed to fetch product")
}

func (s *Service) Create(ctx context.Context, payload Product) (*Product, error) {
	resp, err := s.http.Post(ctx, basePath, payload, nil)
	return single(resp, err, "Failed to create product")
}

func (s *Service) Update(ctx context.Context, id string, payload Product) (*Product, error) {
	resp, err := s.http.Put(ctx, basePath+"/"+url.PathEscape(id), payload, nil)
	return single(resp, err, "Failed to update product")
}

func (s *Service) Delete(ctx context.Context, id string) error {
	resp, err := s.http.Delete(ctx, basePath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return translate(err)
	}
	env := api.Normalize(resp, nil, api.Defaults[any]{
		FailureMessage: "Failed to delete product",
	})
	if !env.Success {
		return envelopeError(env.Error, "Failed to delete product")
	}
	return nil
}

func single(resp *client.Response, err error, fallback string) (*Product, error) {
	if err != nil {
		return nil, translate(err)
	}
	env := api.Normalize(resp, nil, api.Defaults[*Product]{FailureMessage: fallback})
	if !env.Success {
		return nil, envelopeError(env.Error, fallback)
	}
	return env.Data, nil
}

// translate maps transport failures to the fixed message ladder: the
// backend's message field when present, canned texts for 404/500 and pure
// network failures, else the raw error text.
func translate(err error) error {
	var se *client.StatusError
	if !errors.As(err, &se) {
		return errors.New("Network error. Please check your connection.")
	}

	var body struct {
		Message string `json:"message"`
	}
	if jsonErr := json.Unmarshal(se.Body, &body); jsonErr == nil && body.Message != "" {
		return errors.New(body.Message)
	}

	switch se.StatusCode {
	case http.StatusNotFound:
		return errors.New("API endpoint not found. Please check the server URL.")
	case http.StatusInternalServerError:
		return errors.New("Server error. Please try again later.")
	}
	return errors.New("An unexpected error occurred")
}

func envelopeError(e *api.Error, fallback string) error {
	if e != nil && e.Message != "" {
		return errors.New(e.Message)
	}
	return errors.New(fallback)
}
