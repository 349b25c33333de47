package nodedoc

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-nodedoc/internal/fileutil"
	"github.com/alnah/go-nodedoc/internal/yamlutil"
)

// LoadManifest reads and parses the manifest at path.
// A missing file returns an error matching both ErrManifestRead and os.ErrNotExist.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided manifest path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifestRead, err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes a JSON array or YAML sequence of node descriptors.
// Unknown keys are ignored. An explicit null decodes to an empty manifest.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yamlutil.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestParse, err)
	}
	if m == nil {
		m = Manifest{}
	}
	return m, nil
}

// Validate checks every node name. It does not check collisions;
// see Collisions.
func (m Manifest) Validate() error {
	var errs []error
	for i, n := range m {
		if Sanitize(n.Name) == "" {
			errs = append(errs, fmt.Errorf("%w: node %d", ErrEmptyNodeName, i))
			continue
		}
		if err := fileutil.ValidateFileName(n.FileName()); err != nil {
			errs = append(errs, fmt.Errorf("%w: node %d %q: %v", ErrInvalidNodeName, i, n.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Collision is a page file name shared by more than one node.
type Collision struct {
	File    string   `json:"file"`
	Indices []int    `json:"indices"`
	Names   []string `json:"names"`
}

// Collisions returns every page file name produced by more than one node,
// ordered by first occurrence.
func (m Manifest) Collisions() []Collision {
	byFile := make(map[string]int, len(m))
	var groups []Collision

	for i, n := range m {
		file := n.FileName()
		g, ok := byFile[file]
		if !ok {
			byFile[file] = len(groups)
			groups = append(groups, Collision{File: file})
			g = len(groups) - 1
		}
		groups[g].Indices = append(groups[g].Indices, i)
		groups[g].Names = append(groups[g].Names, n.Name)
	}

	var out []Collision
	for _, g := range groups {
		if len(g.Indices) > 1 {
			out = append(out, g)
		}
	}
	return out
}

// CollisionError reports colliding page file names.
type CollisionError struct {
	Collisions []Collision
}

func (e *CollisionError) Error() string {
	parts := make([]string, len(e.Collisions))
	for i, c := range e.Collisions {
		idx := make([]string, len(c.Indices))
		for j, n := range c.Indices {
			idx[j] = strconv.Itoa(n)
		}
		parts[i] = fmt.Sprintf("%s (nodes %s)", c.File, strings.Join(idx, ", "))
	}
	return ErrNameCollision.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap returns ErrNameCollision for errors.Is matching.
func (e *CollisionError) Unwrap() error {
	return ErrNameCollision
}

// Stems returns the colliding file stems.
func (e *CollisionError) Stems() []string {
	stems := make([]string, len(e.Collisions))
	for i, c := range e.Collisions {
		stems[i] = strings.TrimSuffix(c.File, PageExt)
	}
	return stems
}
