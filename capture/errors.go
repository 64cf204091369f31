package capture

import "strings"

// summarize reduces an error to the first line of its description, the only
// part an OutcomeRecord carries.
func summarize(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return strings.TrimSpace(msg)
}
