package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaumet/avook-catalog/internal/domain"
)

func TestSetText_LowercasesAndTrims(t *testing.T) {
	s := SetText(domain.FilterState{}, "  Contes De NIT  ")
	assert.Equal(t, "contes de nit", s.Text)
}

func TestSetText_EmptyClears(t *testing.T) {
	s := SetText(domain.FilterState{Text: "contes"}, "   ")
	assert.Empty(t, s.Text)
	assert.False(t, s.Active())
}

func TestToggleLevel_AddThenRemove(t *testing.T) {
	s := ToggleLevel(domain.FilterState{}, "A1")
	assert.Equal(t, []string{"A1"}, s.Levels)

	s = ToggleLevel(s, "B2")
	assert.Equal(t, []string{"A1", "B2"}, s.Levels)

	s = ToggleLevel(s, "A1")
	assert.Equal(t, []string{"B2"}, s.Levels)

	s = ToggleLevel(s, "B2")
	assert.Nil(t, s.Levels)
	assert.False(t, s.Active())
}

func TestToggleLevel_ComparisonIsExact(t *testing.T) {
	s := ToggleLevel(domain.FilterState{}, "A1")
	s = ToggleLevel(s, "a1")
	assert.Equal(t, []string{"A1", "a1"}, s.Levels, "different spellings are distinct selections")
}

func TestToggleLevel_DoesNotAliasPreviousState(t *testing.T) {
	base := ToggleLevel(domain.FilterState{}, "A1")
	next := ToggleLevel(base, "B2")

	assert.Equal(t, []string{"A1"}, base.Levels)
	assert.Equal(t, []string{"A1", "B2"}, next.Levels)
}

func TestSingleSelectFacets_ReplaceAndClear(t *testing.T) {
	s := SetCollection(domain.FilterState{}, " Club ")
	assert.Equal(t, "Club", s.Collection)

	s = SetCollection(s, "Escola")
	assert.Equal(t, "Escola", s.Collection)

	s = SetCollection(s, "")
	assert.Empty(t, s.Collection)

	s = SetDuration(s, "30 min")
	s = SetLang(s, "CA")
	s = SetAges(s, "6-8")
	assert.Equal(t, "30 min", s.Duration)
	assert.Equal(t, "CA", s.Lang)
	assert.Equal(t, "6-8", s.Ages)
	assert.True(t, s.Active())
}

func TestActive_ZeroValueIsIdle(t *testing.T) {
	assert.False(t, domain.FilterState{}.Active())
}
