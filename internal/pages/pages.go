// Package pages holds the state of every Hoaxify page independently of HTTP.
//
// Each page runs the same small state machine: Idle, then Submitting while
// its backend call is in flight, then Success or Failure. A submission made
// while the page is Submitting is ignored; nothing is cancelled or queued.
package pages

import (
	"errors"

	validator "github.com/go-playground/validator/v10"

	"github.com/patric-chuzhbe/hoaxify/internal/api"
	"github.com/patric-chuzhbe/hoaxify/internal/i18n"
)

type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSuccess
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	}
	return "unknown"
}

// Failure is what a page shows after an unsuccessful call: the server's own
// message when it sent one, otherwise a local message key.
type Failure struct {
	Message    string
	MessageKey string
}

// Text renders the failure in the given locale.
func (f Failure) Text(locale string) string {
	if f.Message != "" {
		return f.Message
	}
	if f.MessageKey != "" {
		return i18n.Translate(locale, f.MessageKey)
	}
	return ""
}

// IsZero reports whether there is nothing to show.
func (f Failure) IsZero() bool {
	return f.Message == "" && f.MessageKey == ""
}

func failureFrom(err error) Failure {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return Failure{Message: apiErr.Message}
	}
	return Failure{MessageKey: i18n.KeyGenericFailure}
}

var validate = validator.New()
