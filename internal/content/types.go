package content

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrDayNotFound is returned when a day slug is not part of the course.
	ErrDayNotFound = errors.New("day not found")
	// ErrSessionNotFound is returned when a session id is not part of a day.
	ErrSessionNotFound = errors.New("session not found")
)

// CodeTopic is a titled code example nested under a Session. Code is kept
// verbatim: interpolation markers and escape sequences are plain text.
type CodeTopic struct {
	Key   string `yaml:"-"`
	Title string `yaml:"title"`
	Code  string `yaml:"code"`
}

// TopicSet is an ordered mapping from topic key to CodeTopic. Iteration order
// is the order the keys appear in the source document.
type TopicSet struct {
	keys   []string
	topics map[string]CodeTopic
}

// NewTopicSet builds a TopicSet from topics in display order. Each topic's
// Key must be unique.
func NewTopicSet(topics ...CodeTopic) (*TopicSet, error) {
	ts := &TopicSet{topics: make(map[string]CodeTopic, len(topics))}
	for _, t := range topics {
		if err := ts.add(t); err != nil {
			return nil, err
		}
	}
	return ts, nil
}

func (ts *TopicSet) add(t CodeTopic) error {
	if t.Key == "" {
		return fmt.Errorf("code topic %q has an empty key", t.Title)
	}
	if _, dup := ts.topics[t.Key]; dup {
		return fmt.Errorf("duplicate code topic key %q", t.Key)
	}
	ts.keys = append(ts.keys, t.Key)
	ts.topics[t.Key] = t
	return nil
}

// Len returns the number of topics. A nil TopicSet is empty.
func (ts *TopicSet) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.keys)
}

// Keys returns the topic keys in display order.
func (ts *TopicSet) Keys() []string {
	if ts == nil {
		return nil
	}
	return append([]string(nil), ts.keys...)
}

// Get returns the topic stored under key.
func (ts *TopicSet) Get(key string) (CodeTopic, bool) {
	if ts == nil {
		return CodeTopic{}, false
	}
	t, ok := ts.topics[key]
	return t, ok
}

// All returns the topics in display order.
func (ts *TopicSet) All() []CodeTopic {
	if ts == nil {
		return nil
	}
	out := make([]CodeTopic, 0, len(ts.keys))
	for _, k := range ts.keys {
		out = append(out, ts.topics[k])
	}
	return out
}

// UnmarshalYAML decodes a YAML mapping while keeping key order, which a Go
// map would lose.
func (ts *TopicSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: detailed_topics must be a mapping", node.Line)
	}
	ts.keys = nil
	ts.topics = make(map[string]CodeTopic, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		var t CodeTopic
		if err := valNode.Decode(&t); err != nil {
			return fmt.Errorf("line %d: decoding topic %q: %w", valNode.Line, keyNode.Value, err)
		}
		t.Key = keyNode.Value
		if err := ts.add(t); err != nil {
			return fmt.Errorf("line %d: %w", keyNode.Line, err)
		}
	}
	return nil
}

// Session is one collapsible curriculum unit of a day.
type Session struct {
	ID             int       `yaml:"id"`
	Title          string    `yaml:"title"`
	Duration       string    `yaml:"duration"`
	Icon           string    `yaml:"icon"`
	Description    string    `yaml:"description"`
	Topics         []string  `yaml:"topics"`
	DetailedTopics *TopicSet `yaml:"detailed_topics"`
}

// Day is one curriculum page of the course.
type Day struct {
	Slug      string    `yaml:"slug"`
	Number    int       `yaml:"day"`
	Title     string    `yaml:"title"`
	Subtitle  string    `yaml:"subtitle"`
	Sessions  []Session `yaml:"sessions"`
	Summary   string    `yaml:"summary"`
	Exercises []string  `yaml:"exercises"`
}

// Session returns the session with the given id.
func (d *Day) Session(id int) (*Session, error) {
	for i := range d.Sessions {
		if d.Sessions[i].ID == id {
			return &d.Sessions[i], nil
		}
	}
	return nil, fmt.Errorf("%s session %d: %w", d.Slug, id, ErrSessionNotFound)
}

// Path returns the route the day page is mounted at.
func (d *Day) Path() string {
	return "/" + d.Slug + "/"
}

// Feature is a highlight card on the landing page.
type Feature struct {
	Icon        string `yaml:"icon"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Course is the complete content registry for the site.
type Course struct {
	Title       string    `yaml:"title"`
	Tagline     string    `yaml:"tagline"`
	Description string    `yaml:"description"`
	Features    []Feature `yaml:"features"`
	Days        []Day     `yaml:"-"`
}

// Day returns the day mounted at slug.
func (c *Course) Day(slug string) (*Day, error) {
	for i := range c.Days {
		if c.Days[i].Slug == slug {
			return &c.Days[i], nil
		}
	}
	return nil, fmt.Errorf("%q: %w", slug, ErrDayNotFound)
}

// Routes returns every path the site serves: the landing page followed by
// one path per day in course order.
func (c *Course) Routes() []string {
	routes := make([]string, 0, len(c.Days)+1)
	routes = append(routes, "/")
	for i := range c.Days {
		routes = append(routes, c.Days[i].Path())
	}
	return routes
}
