// Package knowledge holds the read-only fact table the assistant answers
// from.
//
// The table is an ordered tree of topics. It is built once, either from
// the embedded university.yaml or from a replacement YAML file, and is
// never modified afterwards, so a single Store can be shared by any
// number of sessions without locking.
package knowledge

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Topic keys of the built-in table.
const (
	TopicUniversity = "university_info"
	TopicAdmissions = "admissions"
	TopicCourses    = "courses"
	TopicFacilities = "facilities"
	TopicPlacements = "placements"
	TopicContact    = "contact_info"
	TopicFees       = "fees"
	TopicCampusLife = "campus_life"
)

var (
	// ErrInvalidDocument indicates a knowledge document that cannot be
	// represented as a fact table.
	ErrInvalidDocument = errors.New("invalid knowledge document")

	// ErrUnknownTopic is returned by operations that require an existing topic.
	ErrUnknownTopic = errors.New("unknown topic")
)

//go:embed university.yaml
var universityYAML []byte

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Store is the immutable fact table.
type Store struct {
	root Value
}

// NewStore wraps root, which must be a map of topics. Any other kind
// produces an empty store.
func NewStore(root Value) *Store {
	if root.Kind() != KindMap {
		root = Map()
	}
	return &Store{root: root}
}

// Default returns the store built from the embedded university table.
// The embedded document is parsed on first use.
func Default() *Store {
	defaultOnce.Do(func() {
		s, err := Parse(universityYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded knowledge table: %v", err))
		}
		defaultStore = s
	})
	return defaultStore
}

// Load reads a YAML fact table from path.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading knowledge file: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Parse builds a Store from a YAML document whose root is a mapping.
func Parse(data []byte) (*Store, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: root must be a mapping of topics (line %d)", ErrInvalidDocument, root.Line)
	}

	v, err := fromNode(root)
	if err != nil {
		return nil, err
	}

	return &Store{root: v}, nil
}

func fromNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromNode(n.Alias)

	case yaml.ScalarNode:
		return Text(n.Value), nil

	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind == yaml.AliasNode {
				item = item.Alias
			}
			if item.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("%w: list items must be text (line %d)", ErrInvalidDocument, item.Line)
			}
			items = append(items, item.Value)
		}
		return List(items...), nil

	case yaml.MappingNode:
		fields := make([]Field, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("%w: keys must be text (line %d)", ErrInvalidDocument, key.Line)
			}
			child, err := fromNode(n.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			fields = append(fields, Field{Key: key.Value, Value: child})
		}
		return Map(fields...), nil

	default:
		return Value{}, fmt.Errorf("%w: unsupported node at line %d", ErrInvalidDocument, n.Line)
	}
}

// Get returns the value at topic, or at topic/subtopic/... when a path is
// given. Any missing key yields the Empty value.
func (s *Store) Get(topic string, path ...string) Value {
	if s == nil {
		return Empty()
	}
	return s.root.Get(append([]string{topic}, path...)...)
}

// Has reports whether topic exists.
func (s *Store) Has(topic string) bool {
	if s == nil {
		return false
	}
	_, ok := s.root.fields[topic]
	return ok
}

// Topics lists the top-level topics in document order.
func (s *Store) Topics() []string {
	if s == nil {
		return []string{}
	}
	return s.root.Keys()
}
