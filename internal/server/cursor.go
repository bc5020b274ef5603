package server

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const cursorPrefix = "org:"

// ErrInvalidCursor is returned for a cursor this server did not issue.
var ErrInvalidCursor = errors.New("invalid cursor")

// EncodeCursor returns the opaque cursor of the node at the given absolute offset.
func EncodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(offset)))
}

// DecodeCursor returns the absolute offset a cursor points at.
func DecodeCursor(cursor string) (int, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCursor, cursor)
	}
	s, ok := strings.CutPrefix(string(raw), cursorPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCursor, cursor)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCursor, cursor)
	}
	return n, nil
}

// window computes the offset and limit selected by the before/after cursors.
// A before cursor selects up to pageSize nodes ending just before it.
func window(before, after string, pageSize int) (offset, limit int, err error) {
	switch {
	case before != "" && after != "":
		return 0, 0, errors.New("before and after are mutually exclusive")
	case after != "":
		n, decErr := DecodeCursor(after)
		if decErr != nil {
			return 0, 0, decErr
		}
		return n + 1, pageSize, nil
	case before != "":
		end, decErr := DecodeCursor(before)
		if decErr != nil {
			return 0, 0, decErr
		}
		offset = max(0, end-pageSize)
		return offset, end - offset, nil
	default:
		return 0, pageSize, nil
	}
}
