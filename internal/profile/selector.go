package profile

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Selection is the outcome of parsing a selector argument.
type Selection struct {
	// Current is set when the caller asked for the active profile.
	Current bool
	Profile Profile
}

// SelectorError reports a selector that could not be used as given.
type SelectorError struct {
	Value    string
	Fallback Profile
	Err      error
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("Invalid flag value: %s, defaulting to %s", e.Value, e.Fallback.Name)
}

func (e *SelectorError) Unwrap() error {
	return e.Err
}

// ErrUnknownSelector is wrapped by SelectorError when the number parsed but
// names no profile in the table.
var ErrUnknownSelector = errors.New("selector not in profile table")

// ParseSelector turns a command-line selector into a Selection.
//
// An empty arg or "-1" selects the active profile. Only the leading integer
// of arg is read, so "1abc" and "1.5" both select 1. A value with no leading
// integer, or one not in t, still yields a usable Selection holding the
// fallback profile, together with a *SelectorError describing what was
// wrong; callers are expected to warn and carry on.
func ParseSelector(arg string, t Table) (Selection, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return Selection{Current: true}, nil
	}

	n, err := leadingInt(arg)
	if err != nil {
		return invalid(arg, t, err)
	}
	if n == SelectorCurrent {
		return Selection{Current: true}, nil
	}

	p, ok := t.Lookup(n)
	if !ok {
		return invalid(strconv.Itoa(n), t, ErrUnknownSelector)
	}
	return Selection{Profile: p}, nil
}

var leadingDigits = regexp.MustCompile(`^[+-]?\d+`)

// leadingInt parses the integer prefix of s, ignoring anything after it.
func leadingInt(s string) (int, error) {
	prefix := leadingDigits.FindString(s)
	if prefix == "" {
		return 0, &strconv.NumError{Func: "Atoi", Num: s, Err: strconv.ErrSyntax}
	}
	return strconv.Atoi(prefix)
}

func invalid(arg string, t Table, err error) (Selection, error) {
	fb := fallbackProfile(t)
	return Selection{Profile: fb}, &SelectorError{Value: arg, Fallback: fb, Err: err}
}

func fallbackProfile(t Table) Profile {
	if p, ok := t.Lookup(SelectorFallback); ok {
		return p
	}
	return English
}
