package content

import (
	"context"
	"errors"
	"strings"

	"github.com/alkime/blogsmith/internal/tone"
)

// ErrEmptyTopic is returned when the topic is blank after trimming.
var ErrEmptyTopic = errors.New("topic is empty")

// segmentSeparator sits between intro, body and conclusion.
const segmentSeparator = "\n\n"

// Composed is the generated post and its word count.
type Composed struct {
	Content   string `json:"content"`
	WordCount int    `json:"wordCount"`
}

// Compose builds a post about topic in tone t using the default catalog.
func Compose(topic string, t tone.Tone) (Composed, error) {
	return Default().Compose(topic, t)
}

// ComposeByID is Compose for callers holding a tone ID string.
func ComposeByID(topic, toneID string) (Composed, error) {
	if strings.TrimSpace(topic) == "" {
		return Composed{}, ErrEmptyTopic
	}

	t, err := tone.Parse(toneID)
	if err != nil {
		return Composed{}, err
	}

	return Compose(topic, t)
}

// Compose builds a post about topic in tone t. The topic is substituted
// verbatim; only its emptiness is judged on the trimmed value.
func (c *Catalog) Compose(topic string, t tone.Tone) (Composed, error) {
	if strings.TrimSpace(topic) == "" {
		return Composed{}, ErrEmptyTopic
	}

	ts, err := c.Lookup(t)
	if err != nil {
		return Composed{}, err
	}

	segments := ts.Segments()
	for i, seg := range segments {
		segments[i] = strings.ReplaceAll(seg, Placeholder, topic)
	}

	text := strings.Join(segments, segmentSeparator)

	return Composed{
		Content:   text,
		WordCount: CountWords(text),
	}, nil
}

// CountWords counts the non-empty whitespace-delimited tokens in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// TemplateComposer composes from a catalog, ignoring everything but
// cancellation of ctx.
type TemplateComposer struct {
	Catalog *Catalog
}

// NewTemplateComposer returns a composer backed by the default catalog.
func NewTemplateComposer() *TemplateComposer {
	return &TemplateComposer{Catalog: Default()}
}

// Compose implements the session composer contract.
func (tc *TemplateComposer) Compose(ctx context.Context, topic string, t tone.Tone) (Composed, error) {
	if err := ctx.Err(); err != nil {
		return Composed{}, err
	}

	catalog := tc.Catalog
	if catalog == nil {
		catalog = Default()
	}

	return catalog.Compose(topic, t)
}
