// Package user covers account management. Error-returning service family.
// A successful login hands the received token to the credential provider,
// so every later request carries it.
package user

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/sitefront/internal/api"
	"github.com/2beens/sitefront/internal/auth"
	"github.com/2beens/sitefront/internal/client"
)

type User struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Bio    string `json:"bio,omitempty"`
}

type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

type Service struct {
	http   *client.Client
	tokens auth.TokenProvider
}

func NewService(httpClient *client.Client, tokens auth.TokenProvider) *Service {
	return &Service{http: httpClient, tokens: tokens}
}

func (s *Service) Register(ctx context.Context, payload RegisterPayload) (*User, error) {
	resp, err := s.http.Post(ctx, "/users/register", payload, nil)
	return single(resp, err, "Failed to register user")
}

// Login authenticates with a GET, a quirk of the backend that is kept
// as-is. The credentials travel as query params.
func (s *Service) Login(ctx context.Context, credentials Credentials) (*LoginResult, error) {
	resp, err := s.http.Get(ctx, "/users/login", &client.RequestOptions{
		Query: url.Values{"email": {credentials.Email}, "password": {credentials.Password}},
	})
	if err != nil {
		return nil, errors.New(api.ErrorMessage(err, "Failed to log in"))
	}

	env := api.Normalize(resp, nil, api.Defaults[*LoginResult]{FailureMessage: "Failed to log in"})
	if !env.Success || env.Data == nil {
		return nil, envelopeError(env.Error, "Failed to log in")
	}

	if env.Data.Token != "" {
		if err := s.tokens.SetToken(ctx, env.Data.Token); err != nil {
			log.Errorf("failed to store auth token: %s", err)
		}
	}
	return env.Data, nil
}

// Logout drops the stored token. Purely client-side, there is no session
// to invalidate on the backend.
func (s *Service) Logout(ctx context.Context) error {
	return s.tokens.Clear(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	resp, err := s.http.Get(ctx, "/users/"+url.PathEscape(id), nil)
	return single(resp, err, fmt.Sprintf("Failed to fetch user %s", id))
}

func (s *Service) Update(ctx context.Context, id string, payload User) (*User, error) {
	resp, err := s.http.Put(ctx, "/users/"+url.PathEscape(id), payload, nil)
	return single(resp, err, fmt.Sprintf("Failed to update user %s", id))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	resp, err := s.http.Delete(ctx, "/users/"+url.PathEscape(id), nil)
	if err != nil {
		return errors.New(api.ErrorMessage(err, fmt.Sprintf("Failed to delete user %s", id)))
	}
	env := api.Normalize(resp, nil, api.Defaults[any]{
		FailureMessage: fmt.Sprintf("Failed to delete user %s", id),
	})
	if !env.Success {
		return envelopeError(env.Error, fmt.Sprintf("Failed to delete user %s", id))
	}
	return nil
}

func single(resp *client.Response, err error, fallback string) (*User, error) {
	if err != nil {
		return nil, errors.New(api.ErrorMessage(err, fallback))
	}
	env := api.Normalize(resp, nil, api.Defaults[*User]{FailureMessage: fallback})
	if !env.Success {
		return nil, envelopeError(env.Error, fallback)
	}
	return env.Data, nil
}

func envelopeError(e *api.Error, fallback string) error {
	if e != nil && e.Message != "" {
		return errors.New(e.Message)
	}
	return errors.New(fallback)
}
