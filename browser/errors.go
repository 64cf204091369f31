package browser

import "fmt"

// LaunchError indicates the browser engine failed to start. It is fatal to a
// whole batch: no tasks can run without the shared process.
type LaunchError struct {
	Err error
}

func (e LaunchError) Error() string { return fmt.Sprintf("launching browser: %v", e.Err) }
func (e LaunchError) Unwrap() error { return e.Err }

// ContextError indicates an isolated browsing context could not be created or
// configured. Local to one task.
type ContextError struct {
	Err error
}

func (e ContextError) Error() string { return fmt.Sprintf("creating browsing context: %v", e.Err) }
func (e ContextError) Unwrap() error { return e.Err }

// NavigationError indicates the target address was unreachable or too slow.
type NavigationError struct {
	Err     error
	Timeout bool
}

func (e NavigationError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("navigation timed out: %v", e.Err)
	}
	return fmt.Sprintf("navigation failed: %v", e.Err)
}

func (e NavigationError) Unwrap() error { return e.Err }

// CaptureError indicates artifact extraction failed after a successful
// navigation.
type CaptureError struct {
	Err error
}

func (e CaptureError) Error() string { return fmt.Sprintf("capturing screenshot: %v", e.Err) }
func (e CaptureError) Unwrap() error { return e.Err }
