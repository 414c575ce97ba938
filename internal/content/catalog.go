// Package content composes blog posts from per-tone templates.
package content

import (
	"fmt"
	"strings"

	"github.com/alkime/blogsmith/internal/tone"
)

// ErrUnknownTone is returned when a tone has no template set.
var ErrUnknownTone = tone.ErrUnknown

// TemplateSet holds the three segments a post is built from.
type TemplateSet struct {
	Tone       tone.Tone
	Intro      string
	Body       string
	Conclusion string
}

// Segments returns the segments in composition order.
func (ts TemplateSet) Segments() []string {
	return []string{ts.Intro, ts.Body, ts.Conclusion}
}

// Catalog maps every tone to its template set. It is read-only after construction.
type Catalog struct {
	sets [tone.Count]TemplateSet
}

var defaultCatalog = mustNewCatalog(map[tone.Tone]TemplateSet{
	tone.Casual: {
		Intro:      casualIntro,
		Body:       casualBody,
		Conclusion: casualConclusion,
	},
	tone.Professional: {
		Intro:      professionalIntro,
		Body:       professionalBody,
		Conclusion: professionalConclusion,
	},
	tone.Friendly: {
		Intro:      friendlyIntro,
		Body:       friendlyBody,
		Conclusion: friendlyConclusion,
	},
	tone.Informative: {
		Intro:      informativeIntro,
		Body:       informativeBody,
		Conclusion: informativeConclusion,
	},
	tone.Persuasive: {
		Intro:      persuasiveIntro,
		Body:       persuasiveBody,
		Conclusion: persuasiveConclusion,
	},
})

// Default returns the shared catalog built at startup.
func Default() *Catalog {
	return defaultCatalog
}

// NewCatalog builds a catalog. Every registered tone must have a set, and every
// segment must contain at least one Placeholder.
func NewCatalog(sets map[tone.Tone]TemplateSet) (*Catalog, error) {
	if len(sets) != tone.Count {
		return nil, fmt.Errorf("catalog needs %d template sets, got %d", tone.Count, len(sets))
	}

	var c Catalog
	for _, t := range tone.All() {
		ts, ok := sets[t]
		if !ok {
			return nil, fmt.Errorf("missing template set for tone %s", t)
		}

		for i, seg := range ts.Segments() {
			if !strings.Contains(seg, Placeholder) {
				return nil, fmt.Errorf("tone %s segment %d has no %s placeholder", t, i, Placeholder)
			}
		}

		ts.Tone = t
		c.sets[t] = ts
	}

	return &c, nil
}

func mustNewCatalog(sets map[tone.Tone]TemplateSet) *Catalog {
	c, err := NewCatalog(sets)
	if err != nil {
		panic(err)
	}

	return c
}

// Lookup returns the template set for t.
func (c *Catalog) Lookup(t tone.Tone) (TemplateSet, error) {
	if !t.Valid() {
		return TemplateSet{}, fmt.Errorf("%w: %d", ErrUnknownTone, int(t))
	}

	return c.sets[t], nil
}
