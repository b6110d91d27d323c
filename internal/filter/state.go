// Package filter holds the filter-state mutation operations and the pure
// visibility evaluator.
package filter

import (
	"strings"

	"github.com/jaumet/avook-catalog/internal/domain"
)

// SetText stores the free-text query, trimmed and lower-cased. An empty
// result clears the text facet.
func SetText(s domain.FilterState, raw string) domain.FilterState {
	s.Text = strings.ToLower(strings.TrimSpace(raw))
	return s
}

// ToggleLevel flips membership of level in the selection: present is
// removed, absent is appended. Comparison is exact, matching the label on
// the level button.
func ToggleLevel(s domain.FilterState, level string) domain.FilterState {
	for i, l := range s.Levels {
		if l == level {
			next := make([]string, 0, len(s.Levels)-1)
			next = append(next, s.Levels[:i]...)
			next = append(next, s.Levels[i+1:]...)
			if len(next) == 0 {
				next = nil
			}
			s.Levels = next
			return s
		}
	}
	next := make([]string, len(s.Levels), len(s.Levels)+1)
	copy(next, s.Levels)
	s.Levels = append(next, level)
	return s
}

// SetCollection replaces the collection selection; empty clears it.
func SetCollection(s domain.FilterState, raw string) domain.FilterState {
	s.Collection = strings.TrimSpace(raw)
	return s
}

// SetDuration replaces the duration selection; empty clears it.
func SetDuration(s domain.FilterState, raw string) domain.FilterState {
	s.Duration = strings.TrimSpace(raw)
	return s
}

// SetLang replaces the language selection; empty clears it.
func SetLang(s domain.FilterState, raw string) domain.FilterState {
	s.Lang = strings.TrimSpace(raw)
	return s
}

// SetAges replaces the age-band selection; empty clears it.
func SetAges(s domain.FilterState, raw string) domain.FilterState {
	s.Ages = strings.TrimSpace(raw)
	return s
}
