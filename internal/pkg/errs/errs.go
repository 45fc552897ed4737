package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Kind builds an operation-specific sentinel marked with one of the
// shared error kinds, so both errs.Is(err, sentinel) and
// errs.Is(sentinel, kind) hold.
func Kind(kind error, msg string) error {
	return cr.Mark(cr.New(msg), kind)
}

// Is is mark-aware; use it instead of the stdlib errors.Is whenever the
// error may carry marks.
func Is(err error, reference error) bool {
	return cr.Is(err, reference)
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
