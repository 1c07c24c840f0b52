package cleaner

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"syscall"
)

// ErrorReason categorizes why a deletion failed
type ErrorReason int

const (
	ErrorPermissionDenied ErrorReason = iota
	ErrorFileInUse
	ErrorFileNotFound
	ErrorIsDirectory
	ErrorUnknown
)

// String returns a human-readable error reason
func (e ErrorReason) String() string {
	switch e {
	case ErrorPermissionDenied:
		return "Permission denied"
	case ErrorFileInUse:
		return "File is in use"
	case ErrorFileNotFound:
		return "File not found"
	case ErrorIsDirectory:
		return "Is a directory"
	case ErrorUnknown:
		return "Unknown error"
	default:
		return "Unspecified error"
	}
}

// Key returns a stable machine-readable name, used in json/yaml reports
func (e ErrorReason) Key() string {
	switch e {
	case ErrorPermissionDenied:
		return "permission_denied"
	case ErrorFileInUse:
		return "in_use"
	case ErrorFileNotFound:
		return "not_found"
	case ErrorIsDirectory:
		return "is_directory"
	default:
		return "unknown"
	}
}

// DeletionError represents a detailed deletion error
type DeletionError struct {
	Path     string
	Reason   ErrorReason
	Original error
}

// Error implements the error interface
func (e *DeletionError) Error() string {
	return fmt.Sprintf("%s: %s (%v)", e.Path, e.Reason, e.Original)
}

// Unwrap exposes the underlying filesystem error
func (e *DeletionError) Unwrap() error {
	return e.Original
}

// CategorizeError analyzes an error and returns a categorized DeletionError
func CategorizeError(path string, err error) *DeletionError {
	if err == nil {
		return nil
	}

	delErr := &DeletionError{
		Path:     path,
		Original: err,
		Reason:   ErrorUnknown,
	}

	// Windows reports locked files as sharing/lock violations, not EBUSY
	if isSharingViolation(err) {
		delErr.Reason = ErrorFileInUse
		return delErr
	}

	if errors.Is(err, os.ErrNotExist) {
		delErr.Reason = ErrorFileNotFound
		return delErr
	}

	if errors.Is(err, os.ErrPermission) {
		delErr.Reason = ErrorPermissionDenied
		return delErr
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.EACCES, syscall.EPERM:
			delErr.Reason = ErrorPermissionDenied
		case syscall.EBUSY, syscall.ETXTBSY:
			delErr.Reason = ErrorFileInUse
		case syscall.ENOENT:
			delErr.Reason = ErrorFileNotFound
		case syscall.EISDIR:
			delErr.Reason = ErrorIsDirectory
		}
	}

	return delErr
}

// FormatErrorSummary creates a user-friendly breakdown of error counts.
// Reasons are listed in declaration order.
func FormatErrorSummary(reasons map[ErrorReason]uint64) string {
	if len(reasons) == 0 {
		return ""
	}

	keys := make([]ErrorReason, 0, len(reasons))
	for reason, n := range reasons {
		if n > 0 {
			keys = append(keys, reason)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var b strings.Builder
	for i, reason := range keys {
		branch := "├─"
		if i == len(keys)-1 {
			branch = "└─"
		}
		fmt.Fprintf(&b, "   %s %s: %d\n", branch, reason, reasons[reason])

		switch reason {
		case ErrorPermissionDenied:
			fmt.Fprintf(&b, "   %s  └─ Tip: run from an elevated prompt\n", pipe(i, len(keys)))
		case ErrorFileInUse:
			fmt.Fprintf(&b, "   %s  └─ Tip: close the browser or application and retry\n", pipe(i, len(keys)))
		}
	}

	return b.String()
}

func pipe(i, n int) string {
	if i == n-1 {
		return " "
	}
	return "│"
}
