package assets

// TemplateSet holds the HTML templates for a documentation site.
// The sidebar is rendered once per build and embedded into every page.
type TemplateSet struct {
	Name    string // Identifier (name or directory path)
	Page    string // Per-node page template
	Sidebar string // Sidebar list template, executed with the node list
	Index   string // Index page template wrapping rendered Markdown
}

// Template file names inside a template set directory.
const (
	PageTemplateFile    = "page.html"
	SidebarTemplateFile = "sidebar.html"
	IndexTemplateFile   = "index.html"
)

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"
