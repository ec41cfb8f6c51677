package session

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"travel/internal/apperr"
	"travel/internal/models"
)

func TestState_Transitions(t *testing.T) {
	var s State

	s, ok := s.Submit()
	assert.True(t, ok)
	assert.Equal(t, State{Loading: true}, s)

	again, ok := s.Submit()
	assert.False(t, ok, "second submit while loading is ignored")
	assert.Equal(t, s, again)

	res := &models.Result{Place: "Paris"}
	done := s.Succeed(res)
	assert.False(t, done.Loading)
	assert.Same(t, res, done.Result)
	assert.Empty(t, done.Error)

	next, ok := done.Submit()
	assert.True(t, ok)
	assert.Nil(t, next.Result, "a new submit clears the previous result")

	failed := next.Fail(errors.New("boom"))
	assert.False(t, failed.Loading)
	assert.Nil(t, failed.Result)
	assert.Equal(t, "Error: boom", failed.Error)

	retry, ok := failed.Submit()
	assert.True(t, ok)
	assert.Empty(t, retry.Error, "a new submit clears the previous error")
}

func TestMessage(t *testing.T) {
	notFound := apperr.NotFound(`I don't know if "Atlantis" exists. Please try another location.`)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "not found", err: notFound, want: `I don't know if "Atlantis" exists. Please try another location.`},
		{name: "wrapped not found", err: fmt.Errorf("explore: %w", notFound), want: `I don't know if "Atlantis" exists. Please try another location.`},
		{name: "upstream", err: apperr.Upstream(errors.New("overpass: unexpected status: 504 Gateway Timeout")), want: "Error: overpass: unexpected status: 504 Gateway Timeout"},
		{name: "plain", err: errors.New("context deadline exceeded"), want: "Error: context deadline exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err))
		})
	}
}
