// Package session models what a user sees while a query runs: whether one
// is in flight, its result, or the error message that replaced it.
package session

import (
	"errors"

	"travel/internal/apperr"
	"travel/internal/models"
)

// State is the view of a single user's latest request. Result and Error are
// never both set.
type State struct {
	Loading bool           `json:"loading"`
	Result  *models.Result `json:"result"`
	Error   string         `json:"error"`
}

// Submit starts a new request. It reports false and leaves s unchanged when
// a request is already loading.
func (s State) Submit() (State, bool) {
	if s.Loading {
		return s, false
	}
	return State{Loading: true}, true
}

func (s State) Succeed(result *models.Result) State {
	return State{Result: result}
}

func (s State) Fail(err error) State {
	return State{Error: Message(err)}
}

// Message turns err into the text shown to the user. Not-found errors carry
// their own wording; anything else is prefixed with "Error: ".
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *apperr.Error
	if errors.As(err, &e) && e.Kind == apperr.KindNotFound && e.Message != "" {
		return e.Message
	}
	return "Error: " + err.Error()
}
