package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrNotFound         = errors.New("file not found")
	ErrFetchInit        = errors.New("could not start download")
	ErrFetchFailed      = errors.New("download failed")
	ErrArtifactNotFound = errors.New("downloaded audio not found")
	ErrUnsupported      = errors.New("unsupported audio format")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrConfigNotFound   = errors.New("config file not found")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// RiffleError wraps an error with a user-friendly suggestion.
type RiffleError struct {
	Err        error
	Suggestion string
}

func (e *RiffleError) Error() string {
	return e.Err.Error()
}

func (e *RiffleError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &RiffleError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var riffleErr *RiffleError
	if errors.As(err, &riffleErr) && riffleErr.Suggestion != "" {
		return riffleErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, ErrNotFound) {
		return "Check the path, or pass a YouTube link"
	}

	// yt-dlp missing from PATH surfaces as an exec error
	if errors.Is(err, ErrFetchInit) || strings.Contains(errStr, "executable file not found") {
		return "Install yt-dlp or set downloader.binary in ~/.rifflerc"
	}

	if errors.Is(err, ErrFetchFailed) {
		if strings.Contains(errStr, "video unavailable") || strings.Contains(errStr, "private video") {
			return "The video is unavailable; try another link"
		}
		return "Check your internet connection and try again"
	}

	if errors.Is(err, ErrArtifactNotFound) {
		return "yt-dlp may have changed its output; try updating it"
	}

	if errors.Is(err, ErrUnsupported) {
		return "Supported formats are flac, mp3, wav and ogg"
	}

	if errors.Is(err, ErrUnknownCommand) {
		return "Type 'help' to list commands"
	}

	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) {
		return "Fix or remove ~/.rifflerc and try again"
	}

	return ""
}

// Format returns a one-line error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s (%s)", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
