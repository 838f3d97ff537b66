// fragment.go defines the fragment types produced by the splitters.
package highlight

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FragmentType tags the semantic role of a fragment.
type FragmentType int

const (
	FragmentText            FragmentType = iota // plain text, rendered as-is
	FragmentHighlightedText                     // text matching a highlight term
	FragmentMarkup                              // a balanced HTML tag, passed through verbatim
)

var fragmentTypeNames = map[FragmentType]string{
	FragmentText:            "text",
	FragmentHighlightedText: "highlighted",
	FragmentMarkup:          "markup",
}

func (t FragmentType) String() string {
	if name, ok := fragmentTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("FragmentType(%d)", int(t))
}

// MarshalJSON encodes the type by name.
func (t FragmentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a type name produced by MarshalJSON.
func (t *FragmentType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for k, v := range fragmentTypeNames {
		if v == name {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown fragment type %q", name)
}

// Fragment is a classified substring of the input.
type Fragment struct {
	Content string       `json:"content"`
	Type    FragmentType `json:"type"`
}

// Join concatenates fragment contents in order.
func Join(fragments []Fragment) string {
	var sb strings.Builder
	for _, f := range fragments {
		sb.WriteString(f.Content)
	}
	return sb.String()
}
