// Package tone defines the writing tones a post can be composed in.
package tone

import (
	"errors"
	"fmt"
)

// ErrUnknown is returned when a tone ID does not name one of the registered tones.
var ErrUnknown = errors.New("unknown tone")

// Tone is a writing-style variant. The zero value is Casual.
type Tone int

const (
	// Casual is relaxed and conversational.
	Casual Tone = iota
	// Professional is formal and business-like.
	Professional
	// Friendly is warm and approachable.
	Friendly
	// Informative is educational and detailed.
	Informative
	// Persuasive is compelling and convincing.
	Persuasive

	numTones
)

// Count is the number of registered tones.
const Count = int(numTones)

// Definition describes a tone for presentation.
type Definition struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var definitions = [Count]Definition{
	Casual:       {ID: "casual", Label: "Casual", Description: "Relaxed and conversational"},
	Professional: {ID: "professional", Label: "Professional", Description: "Formal and business-like"},
	Friendly:     {ID: "friendly", Label: "Friendly", Description: "Warm and approachable"},
	Informative:  {ID: "informative", Label: "Informative", Description: "Educational and detailed"},
	Persuasive:   {ID: "persuasive", Label: "Persuasive", Description: "Compelling and convincing"},
}

// Default returns the tone a fresh session starts with.
func Default() Tone {
	return Casual
}

// All returns every registered tone in display order.
func All() []Tone {
	tones := make([]Tone, Count)
	for i := range tones {
		tones[i] = Tone(i)
	}

	return tones
}

// Parse resolves a tone ID such as "casual".
func Parse(id string) (Tone, error) {
	for i, def := range definitions {
		if def.ID == id {
			return Tone(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknown, id)
}

// Valid reports whether t is one of the registered tones.
func (t Tone) Valid() bool {
	return t >= 0 && t < numTones
}

// Definition returns the presentation data for t.
func (t Tone) Definition() Definition {
	if !t.Valid() {
		return Definition{ID: fmt.Sprintf("tone(%d)", int(t)), Label: "Unknown"}
	}

	return definitions[t]
}

// String returns the tone ID.
func (t Tone) String() string {
	return t.Definition().ID
}

// Label returns the human-readable tone name.
func (t Tone) Label() string {
	return t.Definition().Label
}

// Description returns a short description of the tone.
func (t Tone) Description() string {
	return t.Definition().Description
}

// Next returns the tone after t, wrapping around.
func (t Tone) Next() Tone {
	return Tone((int(t) + 1) % Count)
}

// Prev returns the tone before t, wrapping around.
func (t Tone) Prev() Tone {
	return Tone((int(t) + Count - 1) % Count)
}

// MarshalText encodes the tone as its ID.
func (t Tone) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknown, int(t))
	}

	return []byte(t.String()), nil
}

// UnmarshalText decodes a tone ID.
func (t *Tone) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}
