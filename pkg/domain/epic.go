package domain

import (
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Epic is a user defined label entries can be grouped under. Handle is its natural key.
type Epic struct {
	ID      string `yaml:"id" json:"id"`
	Handle  string `yaml:"handle" json:"handle"`
	Title   string `yaml:"title" json:"title"`
	BgColor string `yaml:"bg_color" json:"bg_color"`
}

func NewEpic() *Epic {
	return &Epic{
		ID:      uuid.NewString(),
		Handle:  DefaultEpic,
		Title:   "Default",
		BgColor: "#ffffff",
	}
}

// EpicClass is the CSS class of an epic's rows. Characters outside [A-Za-z0-9_-] become '-'.
func EpicClass(handle string) string {
	b := make([]byte, 0, len("epic-")+len(handle))
	b = append(b, "epic-"...)
	for _, r := range handle {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b = append(b, byte(r))
		default:
			b = append(b, '-')
		}
	}
	return string(b)
}

// EpicFromNode decodes a stored epic leniently, the same way EntryFromNode does.
func EpicFromNode(n *yaml.Node) *Epic {
	fields := map[string]interface{}{}
	if n != nil {
		_ = n.Decode(&fields)
	}

	e := NewEpic()
	stringField(fields, "id", &e.ID)
	stringField(fields, "handle", &e.Handle)
	stringField(fields, "title", &e.Title)
	stringField(fields, "bg_color", &e.BgColor)
	return e
}

// Node encodes the epic as a YAML mapping node.
func (e *Epic) Node() (*yaml.Node, error) {
	n := &yaml.Node{}
	if err := n.Encode(e); err != nil {
		return nil, err
	}
	return n, nil
}
