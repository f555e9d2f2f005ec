package kometa

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yml
var defaultTemplates []byte

// EmbeddedSource is reported by Templates.Source when the built-in set is used.
const EmbeddedSource = "embedded"

// DefaultTemplates returns the built-in template file contents.
func DefaultTemplates() []byte {
	out := make([]byte, len(defaultTemplates))
	copy(out, defaultTemplates)
	return out
}

// Templates holds the user's overlay and collection blocks as ordered YAML
// nodes. Every section handed out is a copy.
type Templates struct {
	root   *yaml.Node
	source string
}

// ParseTemplates decodes a templates document.
func ParseTemplates(data []byte) (*Templates, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &Templates{root: mappingNode()}, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("parse templates: top level must be a mapping")
	}
	return &Templates{root: root}, nil
}

// LoadTemplates reads path from fsys. A missing file falls back to the
// embedded defaults.
func LoadTemplates(fsys afero.Fs, path string) (*Templates, error) {
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) || path == "" {
		tpl, parseErr := ParseTemplates(defaultTemplates)
		if parseErr != nil {
			return nil, parseErr
		}
		tpl.source = EmbeddedSource
		return tpl, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read templates %s: %w", path, err)
	}
	tpl, err := ParseTemplates(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tpl.source = path
	return tpl, nil
}

// Source returns the file the templates came from, or EmbeddedSource.
func (t *Templates) Source() string {
	return t.source
}

// Section returns a copy of the first key that is present. Missing keys
// yield an empty mapping.
func (t *Templates) Section(keys ...string) *yaml.Node {
	if t == nil {
		return mappingNode()
	}
	for _, key := range keys {
		if node := lookup(t.root, key); node != nil {
			return clone(node)
		}
	}
	return mappingNode()
}

// Has reports whether key is defined.
func (t *Templates) Has(key string) bool {
	return t != nil && lookup(t.root, key) != nil
}
