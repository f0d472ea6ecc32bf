package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Year is a calendar year in request bodies. Clients send it either as a JSON
// number (1815) or as a numeric string ("1815").
type Year int

func (y *Year) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("invalid year: %w", err)
		}

		s = strings.TrimSpace(s)
		if s == "" {
			*y = 0
			return nil
		}

		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("cannot parse year: %s", s)
		}
		*y = Year(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid year (integer expected): %w", err)
	}
	*y = Year(n)
	return nil
}

func (y Year) Int() int {
	return int(y)
}

// IntPtr converts an optional Year to an optional int.
func (y *Year) IntPtr() *int {
	if y == nil {
		return nil
	}
	v := int(*y)
	return &v
}
