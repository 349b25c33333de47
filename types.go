package nodedoc

// PortDescriptor describes one input or output of a node.
type PortDescriptor struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Type        string `yaml:"type" json:"type"`
}

// NodeDescriptor is one manifest entry.
type NodeDescriptor struct {
	Name        string           `yaml:"name" json:"name"`
	Description string           `yaml:"description" json:"description"`
	Image       string           `yaml:"image" json:"image"`
	Category    string           `yaml:"category,omitempty" json:"category,omitempty"`
	Inputs      []PortDescriptor `yaml:"inputs" json:"inputs"`
	Outputs     []PortDescriptor `yaml:"outputs" json:"outputs"`
}

// FileName returns the page file name for the node.
func (n NodeDescriptor) FileName() string {
	return FileName(n.Name)
}

// Manifest is the ordered list of nodes to document.
type Manifest []NodeDescriptor

// Site defaults reproduce the layout of the published branches docs.
const (
	DefaultTitle      = "MetaSound Branches"
	DefaultBaseURL    = "https://matthewscharles.github.io/metasound-branches/"
	DefaultStylesheet = "./style.css"
	DefaultFooterText = "Charles Matthews 2025"
	DefaultFooterURL  = "https://github.com/matthewscharles/"
)

// Summary and extra output file names.
const (
	SummaryFile = "nodes.md"
	IndexFile   = "index.html"
	StyleFile   = "style.css"
)

// Site holds settings shared by every generated page.
type Site struct {
	Title      string // Heading text on every page
	HomeURL    string // Heading link target
	BaseURL    string // Prefix for node links in nodes.md
	Stylesheet string // href of the page stylesheet
	FooterText string // Empty omits the footer
	FooterURL  string
}

// DefaultSite returns the site settings of the published branches docs.
func DefaultSite() Site {
	return Site{
		Title:      DefaultTitle,
		HomeURL:    DefaultBaseURL,
		BaseURL:    DefaultBaseURL,
		Stylesheet: DefaultStylesheet,
		FooterText: DefaultFooterText,
		FooterURL:  DefaultFooterURL,
	}
}

// Result lists the files written by a build, in write order.
type Result struct {
	Files []string
}
