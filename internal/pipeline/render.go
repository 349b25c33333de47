package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
)

// Sentinel errors for rendering.
var (
	ErrTemplateParse = errors.New("template parsing failed")
	ErrPageRender    = errors.New("page rendering failed")
	ErrSidebarRender = errors.New("sidebar rendering failed")
	ErrIndexRender   = errors.New("index rendering failed")
)

// SiteData holds the page chrome shared by every page.
type SiteData struct {
	Title      string
	HomeURL    string
	Stylesheet string
	FooterText string // Empty omits the footer block
	FooterURL  string
}

// PortView is a port as seen by templates.
// Text fields hold either a string (escaped by html/template) or
// template.HTML (emitted verbatim); see Text.
type PortView struct {
	Name        any
	Description any
	Type        any
}

// NodeView is a node as seen by the page template.
type NodeView struct {
	Name        any
	Description any
	Category    any
	HasCategory bool
	Image       string
	Inputs      []PortView
	Outputs     []PortView
}

// SidebarEntry is one sidebar link.
type SidebarEntry struct {
	File string
	Name any
}

// PageData is the page template input.
type PageData struct {
	Site    SiteData
	Sidebar template.HTML
	Node    NodeView
}

// IndexData is the index template input.
type IndexData struct {
	Site    SiteData
	Sidebar template.HTML
	Content template.HTML
}

// Text wraps manifest text for templates. Untrusted text stays a string and
// is escaped contextually; trusted text becomes template.HTML.
func Text(s string, trusted bool) any {
	if trusted {
		return template.HTML(s) // #nosec G203 -- caller opted into trusted manifests
	}
	return s
}

// PageRenderer defines the contract for rendering site pages.
type PageRenderer interface {
	RenderSidebar(ctx context.Context, entries []SidebarEntry) (template.HTML, error)
	RenderPage(ctx context.Context, data *PageData) ([]byte, error)
	RenderIndex(ctx context.Context, data *IndexData) ([]byte, error)
}

// TemplateRenderer renders pages from parsed html/template templates.
type TemplateRenderer struct {
	page    *template.Template
	sidebar *template.Template
	index   *template.Template
}

// NewTemplateRenderer parses the page, sidebar and index template sources.
// Returns ErrTemplateParse naming the template that failed.
func NewTemplateRenderer(page, sidebar, index string) (*TemplateRenderer, error) {
	sources := []struct {
		name string
		src  string
		dst  **template.Template
	}{
		{"page", page, nil},
		{"sidebar", sidebar, nil},
		{"index", index, nil},
	}

	r := &TemplateRenderer{}
	sources[0].dst = &r.page
	sources[1].dst = &r.sidebar
	sources[2].dst = &r.index

	for _, s := range sources {
		tmpl, err := template.New(s.name).Option("missingkey=error").Parse(s.src)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, s.name, err)
		}
		*s.dst = tmpl
	}
	return r, nil
}

// RenderSidebar renders the sidebar list items. Called once per build;
// the result is passed into every page so pages share identical markup.
func (r *TemplateRenderer) RenderSidebar(ctx context.Context, entries []SidebarEntry) (template.HTML, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.sidebar.Execute(&buf, entries); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSidebarRender, err)
	}
	return template.HTML(buf.String()), nil // #nosec G203 -- produced by html/template
}

// RenderPage renders one node page.
func (r *TemplateRenderer) RenderPage(ctx context.Context, data *PageData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.Bytes(), nil
}

// RenderIndex renders the index page around pre-rendered Markdown content.
func (r *TemplateRenderer) RenderIndex(ctx context.Context, data *IndexData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.index.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexRender, err)
	}
	return buf.Bytes(), nil
}

// Compile-time interface check.
var _ PageRenderer = (*TemplateRenderer)(nil)
