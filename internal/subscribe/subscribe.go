// Package subscribe handles the newsletter signup flow. Error-returning
// service family: the backend's message when it sent one, a fixed fallback
// otherwise.
package subscribe

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/sitefront/internal/api"
	"github.com/2beens/sitefront/internal/client"
)

type Payload struct {
	Email  string `json:"email"`
	Source string `json:"source,omitempty"`
}

type Service struct {
	http *client.Client
}

func NewService(httpClient *client.Client) *Service {
	return &Service{http: httpClient}
}

func (s *Service) Subscribe(ctx context.Context, payload Payload) (*Payload, error) {
	resp, err := s.http.Post(ctx, "/subscribes", payload, nil)
	if err != nil {
		return nil, fmt.Errorf("%s", api.ErrorMessage(err, "Failed to subscribe"))
	}
	env := api.Normalize(resp, nil, api.Defaults[*Payload]{FailureMessage: "Failed to subscribe"})
	if !env.Success {
		return nil, envelopeError(env.Error, "Failed to subscribe")
	}
	return env.Data, nil
}

func (s *Service) List(ctx context.Context) ([]Payload, error) {
	resp, err := s.http.Get(ctx, "/subscribes", nil)
	if err != nil {
		return nil, fmt.Errorf("%s", api.ErrorMessage(err, "Failed to fetch subscribes"))
	}
	env := api.Normalize(resp, nil, api.Defaults[[]Payload]{
		FailureMessage: "Failed to fetch subscribes",
		Empty:          []Payload{},
	})
	if !env.Success {
		return nil, envelopeError(env.Error, "Failed to fetch subscribes")
	}
	return env.Data, nil
}

func envelopeError(e *api.Error, fallback string) error {
	if e != nil && e.Message != "" {
		return errors.New(e.Message)
	}
	return errors.New(fallback)
}
