package domain

import (
	"encoding/json"
	"strings"
)

// RawTitle is one record as the data source ships it. Optional fields may be
// missing, padded with whitespace, or empty; Languages arrives in several
// historical shapes (see LanguageList).
type RawTitle struct {
	ID          string       `json:"id"`
	MachineName string       `json:"machine_name"`
	HumanName   string       `json:"human_name"`
	Description string       `json:"description"`
	Levels      StringOrList `json:"levels"`
	Ages        string       `json:"ages"`
	Duration    string       `json:"duration"`
	Collection  string       `json:"collection"`
	Languages   LanguageList `json:"languages"`
	Langs       LanguageList `json:"langs"`
	ImageURL    string       `json:"image_url"`
}

// LanguageCodes merges the `languages` and `langs` fields.
func (r *RawTitle) LanguageCodes() []string {
	if len(r.Languages) > 0 {
		return r.Languages
	}
	return r.Langs
}

// wrappedTitle matches the remote endpoint's `{"title": {...}}` wrapper.
type wrappedTitle struct {
	Title RawTitle `json:"title"`
}

// Payload is the full catalog document. The remote endpoint provides the
// facet lists; the embedded deployment ships titles only and the facet sets
// are derived at build time.
type Payload struct {
	Titles      []RawTitle
	Collections []string
	Levels      []string
	Durations   []string
	Languages   []string
	Ages        []string
}

type payloadJSON struct {
	Titles      []wrappedTitle `json:"titles"`
	Collections []string       `json:"collections,omitempty"`
	Levels      []string       `json:"levels,omitempty"`
	Durations   []string       `json:"durations,omitempty"`
	Languages   []string       `json:"languages,omitempty"`
	Ages        []string       `json:"ages_list,omitempty"`
}

// UnmarshalJSON accepts both source shapes: the wrapped document with
// server-provided facet lists, and a bare array of raw title records.
func (p *Payload) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if strings.HasPrefix(trimmed, "[") {
		var titles []RawTitle
		if err := json.Unmarshal(b, &titles); err != nil {
			return err
		}
		*p = Payload{Titles: titles}
		return nil
	}

	var doc payloadJSON
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	titles := make([]RawTitle, 0, len(doc.Titles))
	for _, w := range doc.Titles {
		titles = append(titles, w.Title)
	}
	*p = Payload{
		Titles:      titles,
		Collections: doc.Collections,
		Levels:      doc.Levels,
		Durations:   doc.Durations,
		Languages:   doc.Languages,
		Ages:        doc.Ages,
	}
	return nil
}

// MarshalJSON renders the wrapped document shape the original storefront
// serves at /catalog/json/.
func (p Payload) MarshalJSON() ([]byte, error) {
	doc := payloadJSON{
		Titles:      make([]wrappedTitle, 0, len(p.Titles)),
		Collections: p.Collections,
		Levels:      p.Levels,
		Durations:   p.Durations,
		Languages:   p.Languages,
		Ages:        p.Ages,
	}
	for _, t := range p.Titles {
		doc.Titles = append(doc.Titles, wrappedTitle{Title: t})
	}
	return json.Marshal(doc)
}

// StringOrList decodes a JSON string (possibly comma-joined) or an array of
// strings into a flat list.
type StringOrList []string

func (s *StringOrList) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "null" {
		*s = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*s = list
		return nil
	}
	var single string
	if err := json.Unmarshal(b, &single); err != nil {
		return err
	}
	*s = SplitList(single)
	return nil
}

func (s StringOrList) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(s))
}

// LanguageList decodes any of the historical language shapes: an array of
// {language: code} objects, an array of code strings, or one comma-joined
// string.
type LanguageList []string

func (l *LanguageList) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "null" {
		*l = nil
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var objs []struct {
			Language string `json:"language"`
		}
		if err := json.Unmarshal(b, &objs); err == nil && len(objs) > 0 && objs[0].Language != "" {
			codes := make([]string, 0, len(objs))
			for _, o := range objs {
				codes = append(codes, o.Language)
			}
			*l = codes
			return nil
		}
		var list []string
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*l = list
		return nil
	}

	var joined string
	if err := json.Unmarshal(b, &joined); err != nil {
		return err
	}
	*l = SplitList(joined)
	return nil
}

func (l LanguageList) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(l))
}

// SplitList splits a comma-joined value into trimmed, non-empty parts.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
