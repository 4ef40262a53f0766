// Package contact submits the contact form. Create-and-forget from the
// client's perspective: the submission has no further lifecycle.
package contact

import (
	"context"

	"github.com/2beens/sitefront/internal/api"
	"github.com/2beens/sitefront/internal/client"
)

type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

type Service struct {
	http *client.Client
}

func NewService(httpClient *client.Client) *Service {
	return &Service{http: httpClient}
}

func (s *Service) Create(ctx context.Context, submission Submission) api.Envelope[*Submission] {
	resp, err := s.http.Post(ctx, "/Contact", submission, nil)
	return api.Normalize(resp, err, api.Defaults[*Submission]{
		SuccessMessage: "Message sent successfully",
		FailureMessage: "Failed to create contact",
	})
}
