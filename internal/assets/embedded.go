package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed styles/*.css
var styles embed.FS

//go:embed templates
var templates embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a CSS style from embedded assets by name.
// The name should not include the .css extension.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// LoadTemplateSet loads a template set from embedded assets by name.
func (e *EmbeddedLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dir := path.Join("templates", name)
	return readTemplateSet(name, func(file string) ([]byte, error) {
		return templates.ReadFile(path.Join(dir, file))
	})
}

// EmbeddedStyles lists the names of the built-in styles, sorted.
func EmbeddedStyles() []string {
	entries, err := fs.ReadDir(styles, "styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if n, ok := strings.CutSuffix(e.Name(), ".css"); ok {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// readTemplateSet reads the three templates through read and classifies
// missing files. Both loaders share it so they agree on what "incomplete" means.
func readTemplateSet(name string, read func(file string) ([]byte, error)) (*TemplateSet, error) {
	files := []string{PageTemplateFile, SidebarTemplateFile, IndexTemplateFile}
	contents := make([]string, len(files))
	var missing []string

	for i, file := range files {
		data, err := read(file)
		switch {
		case err == nil:
			contents[i] = string(data)
		case errors.Is(err, fs.ErrNotExist):
			missing = append(missing, file)
		default:
			return nil, fmt.Errorf("%w: reading %s: %w", ErrAssetRead, file, err)
		}
	}

	if len(missing) == len(files) {
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, strings.Join(missing, ", "))
	}

	return &TemplateSet{
		Name:    name,
		Page:    contents[0],
		Sidebar: contents[1],
		Index:   contents[2],
	}, nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
