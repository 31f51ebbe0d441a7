package providers

import (
	"context"
	"errors"
	"fmt"
)

// GenerateOptions tunes a single generation request
type GenerateOptions struct {
	Temperature     float64
	MaxOutputTokens int
}

// TextGenerator produces free text for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

var (
	// ErrGeneratorTimeout is returned when the provider does not answer in time
	ErrGeneratorTimeout = errors.New("text generator timeout")

	// ErrGeneratorTransport is returned for connection level failures
	ErrGeneratorTransport = errors.New("text generator transport error")

	// ErrGeneratorEmptyResponse is returned when the provider answers without content
	ErrGeneratorEmptyResponse = errors.New("text generator returned empty content")
)

// GeneratorHTTPError carries the status of a non-2xx provider response
type GeneratorHTTPError struct {
	Status int
	Body   string
}

func (e *GeneratorHTTPError) Error() string {
	return fmt.Sprintf("text generator http error status=%d", e.Status)
}
