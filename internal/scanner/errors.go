package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
)

// Reason categorizes why a path could not be fully measured
type Reason int

const (
	ReasonAccessDenied Reason = iota
	ReasonNotFound
	ReasonTimeout
	ReasonIO
	ReasonUnknown
)

// String returns a human-readable reason
func (r Reason) String() string {
	switch r {
	case ReasonAccessDenied:
		return "Access denied"
	case ReasonNotFound:
		return "Not found"
	case ReasonTimeout:
		return "Timed out"
	case ReasonIO:
		return "I/O error"
	case ReasonUnknown:
		return "Unknown error"
	default:
		return "Unspecified error"
	}
}

// Failure records one path that could not be fully measured.
type Failure struct {
	Path   string `json:"path"`
	Reason Reason `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// Error implements the error interface
func (f Failure) Error() string {
	return fmt.Sprintf("%s: %s (%s)", f.Path, f.Reason, f.Detail)
}

// Categorize analyzes an enumeration error and returns a Failure
func Categorize(path string, err error) Failure {
	f := Failure{Path: path, Reason: ReasonUnknown}
	if err == nil {
		return f
	}
	f.Detail = err.Error()

	if os.IsNotExist(err) {
		f.Reason = ReasonNotFound
		return f
	}
	if os.IsPermission(err) {
		f.Reason = ReasonAccessDenied
		return f
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.EACCES, syscall.EPERM:
			f.Reason = ReasonAccessDenied
		case syscall.ENOENT:
			f.Reason = ReasonNotFound
		case syscall.EIO:
			f.Reason = ReasonIO
		default:
			f.Reason = ReasonUnknown
		}
		return f
	}

	if errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		f.Reason = ReasonTimeout
	}
	return f
}

// ReasonFromMessage recovers a Reason from a stored error string. FolderStat
// carries errors as plain text across task boundaries, so summary grouping
// falls back to substring matching.
func ReasonFromMessage(msg string) Reason {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "permission denied"), strings.Contains(lower, "access is denied"):
		return ReasonAccessDenied
	case strings.Contains(lower, "no such file"), strings.Contains(lower, "cannot find"):
		return ReasonNotFound
	case strings.Contains(lower, "timed out"), strings.Contains(lower, "timeout"),
		strings.Contains(lower, "deadline exceeded"):
		return ReasonTimeout
	default:
		return ReasonUnknown
	}
}

// GroupFailures groups failures by reason
func GroupFailures(failures []Failure) map[Reason][]Failure {
	grouped := make(map[Reason][]Failure)
	for _, f := range failures {
		grouped[f.Reason] = append(grouped[f.Reason], f)
	}
	return grouped
}
