// Error codes reference for the transformation engine.
//
// Technical errors are mapped to user-friendly messages with codes for
// support reference:
//
//	FILE001 - Empty input: the file has no parseable content
//	FILE002 - Invalid CSV: the file could not be parsed as delimited text
//	FILE003 - Encoding error: bytes are not valid in the declared encoding
//	KEY001  - Missing key column: the join/diff column is absent
//	KEY002  - Duplicate key: the same key value appears more than once
//	MRG001  - Schema mismatch: append merge across different headers
//	TPL001  - Invalid template: failed store validation
//	TPL002  - Template not found
//	COL001  - Column not found
//	ERR000  - Fallback for unexpected errors
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so specific patterns sit before general ones.
package engine

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable
// guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "empty input",
		msg: UserMessage{
			Message: "The file has no content",
			Action:  "Upload a file that contains at least one row",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "The file could not be parsed as delimited text",
			Action:  "Check for unbalanced quotes or a wrong delimiter",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "The file contains characters invalid in the declared encoding",
			Action:  "Save the file as UTF-8 or declare the correct encoding",
			Code:    "FILE003",
		},
	},
	{
		pattern: "key column",
		msg: UserMessage{
			Message: "The selected key column does not exist in every table",
			Action:  "Pick a column present in all involved files",
			Code:    "KEY001",
		},
	},
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "The key column contains repeated values",
			Action:  "Deduplicate the key column or allow last-wins handling",
			Code:    "KEY002",
		},
	},
	{
		pattern: "schema mismatch",
		msg: UserMessage{
			Message: "The files have different column headers",
			Action:  "Align the headers before appending, or use a key join",
			Code:    "MRG001",
		},
	},
	{
		pattern: "invalid template",
		msg: UserMessage{
			Message: "The template is incomplete",
			Action:  "Give the template a name and at least one named column",
			Code:    "TPL001",
		},
	},
	{
		pattern: "template not found",
		msg: UserMessage{
			Message: "The template does not exist",
			Action:  "It may have been deleted; refresh the template list",
			Code:    "TPL002",
		},
	},
	{
		pattern: "column not found",
		msg: UserMessage{
			Message: "A referenced column does not exist in the file",
			Action:  "Verify column names match the file header exactly",
			Code:    "COL001",
		},
	},
}

// defaultMessage is the ERR000 fallback. Support staff should check logs
// for the original technical error when users report it.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. The
// first matching pattern wins; unknown errors fall back to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError creates a formatted error string for display:
// "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether an error matches a known pattern and is
// safe to show verbatim-mapped; ERR000 fallbacks should be logged instead.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
