// Package store holds the author and book stores. Each store owns one
// collection and enforces its uniqueness rules; the book store additionally
// checks that referenced authors exist.
//
// Both stores serialize access with their own lock. The book store may call
// into the author store while holding its lock, never the other way around.
package store

import (
	"errors"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/snnyvrz/library-api/internal/apperror"
)

const (
	minYear      = 1000
	maxISBNRunes = 20
)

type clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

func yearRules(now clock, msg string) []validation.Rule {
	return []validation.Rule{
		validation.Min(minYear).Error(msg),
		validation.Max(now().Year()).Error(msg),
	}
}

// validationError flattens ozzo errors into a single Validation error. Field
// messages are joined in field order so the output is stable.
func validationError(err error) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return apperror.Validation("%s", err.Error())
	}

	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		if errs[k] != nil {
			msgs = append(msgs, errs[k].Error())
		}
	}
	return apperror.Validation("%s", strings.Join(msgs, "; "))
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
