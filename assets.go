package nodedoc

import (
	"errors"

	"github.com/alnah/go-nodedoc/internal/assets"
)

// Asset name constants for built-in styles and templates.
const (
	// DefaultStyle is the name of the built-in CSS style.
	DefaultStyle = "default"

	// DefaultTemplateSet is the name of the built-in template set.
	DefaultTemplateSet = "default"
)

// AssetLoader defines the contract for loading CSS styles and page templates.
//
// NewAssetLoader returns a filesystem loader with fallback to the embedded
// defaults. Implement this interface for other backends.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the page, sidebar and index templates by name.
	// Returns ErrTemplateSetNotFound if the template set doesn't exist.
	// Returns ErrIncompleteTemplateSet if required templates are missing.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// TemplateSet holds the html/template sources for a site.
type TemplateSet struct {
	Name    string // Identifier (name or path)
	Page    string // Node page template
	Sidebar string // Sidebar list items, rendered once per build
	Index   string // Optional landing page wrapping the summary
}

// NewTemplateSet creates a TemplateSet from template sources.
func NewTemplateSet(name, page, sidebar, index string) *TemplateSet {
	return &TemplateSet{
		Name:    name,
		Page:    page,
		Sidebar: sidebar,
		Index:   index,
	}
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - styles/{name}.css for CSS styles
//   - templates/{name}/page.html, sidebar.html and index.html for template sets
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{inner: resolver}, nil
}

// AvailableStyles lists the embedded style names.
func AvailableStyles() []string {
	return assets.EmbeddedStyles()
}

// assetLoaderAdapter wraps an internal loader to return public types.
type assetLoaderAdapter struct {
	inner assets.AssetLoader
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.inner.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := a.inner.LoadTemplateSet(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return NewTemplateSet(ts.Name, ts.Page, ts.Sidebar, ts.Index), nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateSetNotFound):
		return wrapError(ErrTemplateSetNotFound, err)
	case errors.Is(err, assets.ErrIncompleteTemplateSet):
		return wrapError(ErrIncompleteTemplateSet, err)
	case errors.Is(err, assets.ErrInvalidBasePath):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrStyleNotFound, err) // Invalid name means not found
	default:
		return err
	}
}

// wrapError creates an error that keeps the original message and matches
// the public sentinel via errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel. Internal errors stay hidden.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
