// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

// ActionableError is a failure reported to the user: what forge was doing,
// the file or archive entry it was working on, the catalog issue that
// explains the failure, and short hints printed under the message.
//
// Build one with Wrap:
//
//	return issue.Wrap(err, issue.ArchiveUnreadableId, "open archive", path,
//		"forge reads zip and 7z archives")
type ActionableError struct {
	// Issue is the catalog entry rendered after the message (0 for none).
	Issue Id
	// Operation is a verb phrase such as "open archive" or "load configuration".
	Operation string
	// Resource is the path, archive or entry involved (optional).
	Resource string
	// Hints are one-line remedies listed under the message (optional).
	Hints []string
	// Cause is the underlying error.
	Cause error
}

// Wrap reports err as a failure of operation on resource, explained by the
// catalog issue id. It returns nil when err is nil.
func Wrap(err error, id Id, operation, resource string, hints ...string) error {
	if err == nil {
		return nil
	}
	return &ActionableError{
		Issue:     id,
		Operation: operation,
		Resource:  resource,
		Hints:     hints,
		Cause:     err,
	}
}

// Error returns "failed to <operation>[: <resource>]: <cause>".
func (e *ActionableError) Error() string {
	var msg strings.Builder
	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)
	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	return msg.String()
}

// Unwrap returns the cause.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Guide returns the catalog issue attached to the error, or nil.
func (e *ActionableError) Guide() *Issue {
	if e.Issue == 0 {
		return nil
	}
	return Get(e.Issue)
}

// Format renders the message followed by the hints, one per line:
//
//	failed to open archive: app.zip: zip: not a valid zip file
//
//	  • forge reads zip and 7z archives
//
// verbose appends every error of the cause chain, outermost first.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder
	msg.WriteString(e.Error())

	if len(e.Hints) > 0 {
		msg.WriteString("\n")
		for _, hint := range e.Hints {
			msg.WriteString("\n  • ")
			msg.WriteString(hint)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		depth := 1
		for err := e.Cause; err != nil; err = errors.Unwrap(err) {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			depth++
		}
	}
	return msg.String()
}
