package paging

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinels for errors.Is matching against the typed errors below.
var (
	ErrOutOfRange    = errors.New("paging: page out of range")
	ErrRequestFormat = errors.New("paging: malformed page number")
)

// OutOfRangeError reports a syntactically valid page number that lies outside
// [1, Pages], or that is not 1 when there are no pages at all.
type OutOfRangeError struct {
	Page  int
	Pages int
}

func (e *OutOfRangeError) Error() string {
	if e.Pages == 0 {
		return fmt.Sprintf("paging: page %d out of range (no pages)", e.Page)
	}
	return fmt.Sprintf("paging: page %d out of range [1, %d]", e.Page, e.Pages)
}

// Is makes errors.Is(err, ErrOutOfRange) true.
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// RequestFormatError reports raw page input that is not an integer.
type RequestFormatError struct {
	Input string
	Err   error
}

func (e *RequestFormatError) Error() string {
	return fmt.Sprintf("paging: malformed page number %q", e.Input)
}

// Is makes errors.Is(err, ErrRequestFormat) true.
func (e *RequestFormatError) Is(target error) bool {
	return target == ErrRequestFormat
}

func (e *RequestFormatError) Unwrap() error {
	return e.Err
}

// SourceError wraps a failure of Source.Count or Source.Fetch. The original
// error is reachable through errors.Is and errors.As.
type SourceError struct {
	Op  string // "count" or "fetch"
	Err error
}

func (e *SourceError) Error() string {
	return "paging: " + e.Op + ": " + e.Err.Error()
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// ParsePage converts raw page input into an integer. Surrounding whitespace is
// ignored; anything else that is not a base-10 integer yields a
// *RequestFormatError. Range is not checked here: zero and negative numbers are
// returned as-is and rejected later by Paginate as out of range.
//
// Callers decide what an absent parameter means; the conventional default is 1.
func ParsePage(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &RequestFormatError{Input: raw, Err: err}
	}
	return n, nil
}

// IsNotFound reports whether err is an out-of-range or malformed page error,
// the two cases a host conventionally surfaces as "not found".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOutOfRange) || errors.Is(err, ErrRequestFormat)
}
