package subscribe

import (
	"context"
	"regexp"
	"strings"
	"sync"
)

const (
	msgEmailRequired = "Email is required"
	msgEmailInvalid  = "Please enter a valid email address"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail applies the same format rule the signup form uses. Returns
// an empty string when the address passes.
func ValidateEmail(email string) string {
	if email == "" {
		return msgEmailRequired
	}
	if !emailRe.MatchString(email) {
		return msgEmailInvalid
	}
	return ""
}

// SignupFetcher is the newsletter form's view model: submit an address,
// track loading/error/done. Invalid addresses are rejected before any
// network call.
type SignupFetcher struct {
	mu     sync.Mutex
	svc    *Service
	closed bool

	loading    bool
	errMsg     string
	subscribed bool
}

type SignupState struct {
	Loading    bool
	Err        string
	Subscribed bool
}

func NewSignupFetcher(svc *Service) *SignupFetcher {
	return &SignupFetcher{svc: svc}
}

func (f *SignupFetcher) Submit(ctx context.Context, email string) bool {
	email = strings.TrimSpace(email)
	if msg := ValidateEmail(email); msg != "" {
		f.mu.Lock()
		if !f.closed {
			f.errMsg = msg
		}
		f.mu.Unlock()
		return false
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return false
	}
	f.loading = true
	f.errMsg = ""
	f.mu.Unlock()

	_, err := f.svc.Subscribe(ctx, Payload{Email: email, Source: "newsletter"})

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return err == nil
	}
	f.loading = false
	if err != nil {
		f.errMsg = err.Error()
		return false
	}
	f.subscribed = true
	return true
}

func (f *SignupFetcher) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	f.errMsg = ""
	f.subscribed = false
}

func (f *SignupFetcher) State() SignupState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return SignupState{Loading: f.loading, Err: f.errMsg, Subscribed: f.subscribed}
}

func (f *SignupFetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}
