// Package flows implements the modal mutation workflows attached to the
// timetable screen. Every flow follows the same shape: validate locally,
// call one API function, surface the server description on success and
// failure, and leave local state untouched when the attempt fails.
package flows

import (
	"time"

	"github.com/hocvien-dev/timetable-console/internal/api"
	appErrors "github.com/hocvien-dev/timetable-console/pkg/errors"
)

// Notifier is the transient notification surface shared with the
// controller.
type Notifier interface {
	Success(message string)
	Warning(message string)
	Error(message string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Warning(string) {}
func (nopNotifier) Error(string)   {}

// finish applies the shared envelope handling of every flow.
func finish(n Notifier, result *api.MutationResult, err error) error {
	if err != nil {
		n.Error(appErrors.FromError(err).Message)
		return err
	}
	if !result.Success {
		n.Error(describe(result.Description))
		return appErrors.Clone(appErrors.ErrRejected, result.Description)
	}
	n.Success(describe(result.Description))
	return nil
}

func describe(description string) string {
	if description == "" {
		return appErrors.GenericMessage
	}
	return description
}

func reject(n Notifier, message string) error {
	n.Warning(message)
	return appErrors.Clone(appErrors.ErrValidation, message)
}

// daysBetween counts whole calendar days from a to b, ignoring clock time.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start) / (24 * time.Hour))
}
