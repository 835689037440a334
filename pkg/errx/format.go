package errx

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// UserString returns the most user-friendly message for err, falling back to
// err.Error() for errors that are not an *Error.
func UserString(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		if e.message != "" {
			return e.message
		}
		if e.description != "" {
			return e.description
		}
		if e.code != "" {
			return e.code
		}
	}
	return err.Error()
}

// IsError checks if the given error is an errx.Error.
func IsError(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	return errors.As(err, &e)
}

// PrintTrace writes the DebugString of any error to w, one chain entry per line.
// Nil errors and writers are ignored.
func PrintTrace(w io.Writer, err error) {
	if err == nil || w == nil {
		return
	}
	fmt.Fprintln(w, DebugString(err))
}

// DebugString returns a verbose error string with codes, context, and chain.
func DebugString(err error) string {
	if err == nil {
		return ""
	}
	chain := flattenChain(err)
	var b strings.Builder
	for i, item := range chain {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch typed := item.(type) {
		case *Error:
			fmt.Fprintf(&b, "%d: %T: %s", i+1, typed, typed.Error())
			if typed.code != "" {
				fmt.Fprintf(&b, " | code=%s", typed.code)
			}
			if typed.description != "" {
				fmt.Fprintf(&b, " | description=%q", typed.description)
			}
			if typed.message != "" {
				fmt.Fprintf(&b, " | message=%q", typed.message)
			}
			if len(typed.context) > 0 {
				b.WriteString(" | context={")
				b.WriteString(formatContext(typed.context))
				b.WriteByte('}')
			}
		default:
			fmt.Fprintf(&b, "%d: %T: %s", i+1, item, item.Error())
		}
	}
	return b.String()
}

func flattenChain(err error) []error {
	var out []error
	queue := []error{err}
	// Bounded so that cyclic or pathological Unwrap chains still terminate.
	const maxEntries = 64
	for len(queue) > 0 && len(out) < maxEntries {
		current := queue[0]
		queue = queue[1:]
		if current == nil {
			continue
		}
		out = append(out, current)
		queue = append(queue, unwrapAll(current)...)
	}
	return out
}

func unwrapAll(err error) []error {
	switch unwrapped := err.(type) {
	case interface{ Unwrap() []error }:
		return unwrapped.Unwrap()
	case interface{ Unwrap() error }:
		if next := unwrapped.Unwrap(); next != nil {
			return []error{next}
		}
	}
	return nil
}

func formatContext(ctx map[string]any) string {
	keys := make([]string, 0, len(ctx))
	for key := range ctx {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, ctx[key]))
	}
	return strings.Join(parts, ", ")
}
