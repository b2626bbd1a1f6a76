package logger

import (
	"testing"
)

func TestWithUserID_ChainsIntoEvent(t *testing.T) {
	Init("test")

	l := WithUserID(42)
	if l == nil {
		t.Fatal("expected a logger")
	}
	// the returned logger must support direct event chaining
	l.Info().Uint("movie_id", 7).Msg("reaction toggled")
}

func TestWithRequestID_ChainsIntoEvent(t *testing.T) {
	Init("test")

	l := WithRequestID("abc123")
	if l == nil {
		t.Fatal("expected a logger")
	}
	l.Warn().Msg("request slow")
}
