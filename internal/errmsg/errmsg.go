// Package errmsg maps tool errors to user-facing messages with support codes.
//
// # Error Codes Reference
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Not found: Input file does not exist
//	          Action: Check the path and try again
//	          Patterns: "no such file"
//
//	FILE002 - No access: File cannot be accessed
//	          Action: Check file permissions and that the directory exists
//	          Patterns: "permission denied", "is a directory"
//
//	FILE003 - Invalid CSV: File is not a valid CSV
//	          Action: Quote fields that contain the delimiter, quotes or newlines
//	          Patterns: "invalid csv"
//
// # Input Errors
//
//	ROW001 - Short row: A row is missing the key column
//	ARG001 - Key index: Key index must be a non-negative integer
//	COL001 - Missing column: A required header column is absent
//
// # Default Error (ERR000)
//
// Fallback when no typed error or pattern matches.
//
// Typed errors are checked first with errors.Is/errors.As. Patterns are
// matched case-insensitively with strings.Contains; the first match wins.
package errmsg

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/JonMunkholm/committools/internal/csvio"
	"github.com/JonMunkholm/committools/internal/join"
	"github.com/JonMunkholm/committools/internal/repos"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgNotFound = UserMessage{
		Message: "Input file does not exist",
		Action:  "Check the path and try again",
		Code:    "FILE001",
	}
	msgNoAccess = UserMessage{
		Message: "File cannot be accessed",
		Action:  "Check file permissions and that the directory exists",
		Code:    "FILE002",
	}
	msgInvalidCSV = UserMessage{
		Message: "File is not a valid CSV",
		Action:  "Quote fields that contain the delimiter, quotes or newlines",
		Code:    "FILE003",
	}
	msgShortRow = UserMessage{
		Message: "A row is missing the key column",
		Action:  "Fix the reported line or choose a smaller key index",
		Code:    "ROW001",
	}
	msgKeyIndex = UserMessage{
		Message: "Key index must be a non-negative integer",
		Action:  "Pass a zero-based column number",
		Code:    "ARG001",
	}
	msgMissingColumn = UserMessage{
		Message: "A required column is missing from the header",
		Action:  "Include repository_name, repository_url and repository_language in the header row",
		Code:    "COL001",
	}
	msgUnknown = UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Check the log output for details",
		Code:    "ERR000",
	}
)

var errorPatterns = []errorPattern{
	{pattern: "no such file", msg: msgNotFound},
	{pattern: "permission denied", msg: msgNoAccess},
	{pattern: "is a directory", msg: msgNoAccess},
	{pattern: "invalid csv", msg: msgInvalidCSV},
	{pattern: "invalid key index", msg: msgKeyIndex},
	{pattern: "missing column", msg: msgMissingColumn},
}

// Map converts an error into a UserMessage.
// Returns the zero UserMessage for a nil error.
func Map(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var (
		short   *join.MalformedRowError
		parse   *csvio.ParseError
		missing *repos.MissingColumnError
	)
	switch {
	case errors.Is(err, join.ErrInvalidKeyIndex):
		return msgKeyIndex
	case errors.As(err, &short):
		return msgShortRow
	case errors.As(err, &missing):
		return msgMissingColumn
	case errors.As(err, &parse):
		return msgInvalidCSV
	case errors.Is(err, fs.ErrNotExist):
		return msgNotFound
	case errors.Is(err, fs.ErrPermission):
		return msgNoAccess
	}

	lower := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.msg
		}
	}

	return msgUnknown
}

// Format renders err with its user message, code and suggested action.
func Format(err error) string {
	if err == nil {
		return ""
	}
	m := Map(err)
	return fmt.Sprintf("%s [%s]: %v\n  %s", m.Message, m.Code, err, m.Action)
}
