package nodedoc

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/alnah/go-nodedoc/internal/fileutil"
	"github.com/alnah/go-nodedoc/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.PageRenderer  = (*pipeline.TemplateRenderer)(nil)
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
)

// Separator is logged between page lines and the summary line.
const Separator = "-----"

// Builder generates a documentation site from a manifest.
// Create with NewBuilder and call Build for each generation pass.
type Builder struct {
	cfg           builderConfig
	assetLoader   AssetLoader
	renderer      pipeline.PageRenderer
	htmlConverter pipeline.HTMLConverter
	style         string
}

// NewBuilder creates a Builder with the published branches defaults.
// Returns an error if assets cannot be loaded or templates fail to parse.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		cfg: builderConfig{
			site:            DefaultSite(),
			logger:          io.Discard,
			templateSetName: DefaultTemplateSet,
			styleInput:      DefaultStyle,
		},
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.assetLoader == nil {
		loader, err := NewAssetLoader(b.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		b.assetLoader = loader
	}

	ts := b.cfg.templateSet
	if ts == nil {
		var err error
		ts, err = b.assetLoader.LoadTemplateSet(b.cfg.templateSetName)
		if err != nil {
			return nil, fmt.Errorf("loading template set: %w", err)
		}
	}

	if b.renderer == nil {
		r, err := pipeline.NewTemplateRenderer(ts.Page, ts.Sidebar, ts.Index)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRender, err)
		}
		b.renderer = r
	}

	if b.cfg.writeStyle {
		if err := b.resolveStyle(); err != nil {
			return nil, err
		}
	}

	if b.cfg.index && b.htmlConverter == nil {
		b.htmlConverter = pipeline.NewGoldmarkConverter()
	}

	return b, nil
}

// resolveStyle loads the stylesheet from a file path or by name.
func (b *Builder) resolveStyle() error {
	input := b.cfg.styleInput
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: loading style file %q: %w", ErrStyleNotFound, input, err)
		}
		b.style = string(content)
		return nil
	}

	content, err := b.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	b.style = content
	return nil
}

// Build writes one page per node, then nodes.md, then any enabled extras,
// logging "- <file>" for each. Files written before a failure stay on disk.
//
// Name collisions fail before anything is written unless
// WithAllowCollisions is set. The context is checked before every write.
func (b *Builder) Build(ctx context.Context, m Manifest, outputDir string) (*Result, error) {
	if outputDir == "" {
		return nil, ErrEmptyOutput
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if !b.cfg.allowCollisions {
		if collisions := b.collisions(m); len(collisions) > 0 {
			return nil, &CollisionError{Collisions: collisions}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := fileutil.EnsureDir(outputDir); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateOutputDir, err)
	}

	trusted := b.cfg.trustedHTML
	entries := make([]pipeline.SidebarEntry, len(m))
	for i, n := range m {
		entries[i] = pipeline.SidebarEntry{File: n.FileName(), Name: pipeline.Text(n.Name, trusted)}
	}
	sidebar, err := b.renderer.RenderSidebar(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	site := b.siteData()
	result := &Result{}

	for _, n := range m {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		page, err := b.renderer.RenderPage(ctx, &pipeline.PageData{
			Site:    site,
			Sidebar: sidebar,
			Node:    nodeView(n, trusted),
		})
		if err != nil {
			return result, fmt.Errorf("%w: %q: %w", ErrRender, n.Name, err)
		}

		if err := b.write(result, outputDir, n.FileName(), page, ErrWritePage); err != nil {
			return result, err
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	summary := pipeline.Summary(summaryRows(m), b.cfg.site.BaseURL)
	path, err := fileutil.WriteFile(outputDir, SummaryFile, []byte(summary))
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrWriteSummary, err)
	}
	result.Files = append(result.Files, path)
	fmt.Fprintln(b.cfg.logger, Separator)
	fmt.Fprintf(b.cfg.logger, "- %s\n", SummaryFile)

	if b.cfg.index {
		if err := b.writeIndex(ctx, result, outputDir, site, sidebar, summary); err != nil {
			return result, err
		}
	}

	if b.cfg.writeStyle {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := b.write(result, outputDir, StyleFile, []byte(b.style), ErrWriteStyle); err != nil {
			return result, err
		}
	}

	return result, nil
}

// writeIndex renders the summary, with the optional intro above it, as index.html.
func (b *Builder) writeIndex(ctx context.Context, result *Result, outputDir string, site pipeline.SiteData, sidebar template.HTML, summary string) error {
	markdown := summary
	if b.cfg.introFile != "" {
		intro, err := os.ReadFile(b.cfg.introFile) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: %w", ErrIntroRead, err)
		}
		markdown = string(intro) + "\n\n" + summary
	}

	content, err := b.htmlConverter.ToHTML(ctx, markdown)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	page, err := b.renderer.RenderIndex(ctx, &pipeline.IndexData{
		Site:    site,
		Sidebar: sidebar,
		Content: content,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	return b.write(result, outputDir, IndexFile, page, ErrWriteIndex)
}

// write stores one file, records it, and logs its name.
func (b *Builder) write(result *Result, dir, name string, content []byte, sentinel error) error {
	path, err := fileutil.WriteFile(dir, name, content)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", sentinel, name, err)
	}
	result.Files = append(result.Files, path)
	fmt.Fprintf(b.cfg.logger, "- %s\n", name)
	return nil
}

// collisions returns node file collisions, plus nodes that would be
// overwritten by index.html when the index is enabled.
func (b *Builder) collisions(m Manifest) []Collision {
	collisions := m.Collisions()
	if !b.cfg.index {
		return collisions
	}
	for i, n := range m {
		if n.FileName() == IndexFile {
			collisions = append(collisions, Collision{
				File:    IndexFile,
				Indices: []int{i},
				Names:   []string{n.Name},
			})
		}
	}
	return collisions
}

func (b *Builder) siteData() pipeline.SiteData {
	s := b.cfg.site
	return pipeline.SiteData{
		Title:      s.Title,
		HomeURL:    s.HomeURL,
		Stylesheet: s.Stylesheet,
		FooterText: s.FooterText,
		FooterURL:  s.FooterURL,
	}
}

// nodeView converts a descriptor to its template view.
func nodeView(n NodeDescriptor, trusted bool) pipeline.NodeView {
	return pipeline.NodeView{
		Name:        pipeline.Text(n.Name, trusted),
		Description: pipeline.Text(n.Description, trusted),
		Category:    pipeline.Text(n.Category, trusted),
		HasCategory: n.Category != "",
		Image:       n.Image,
		Inputs:      portViews(n.Inputs, trusted),
		Outputs:     portViews(n.Outputs, trusted),
	}
}

func portViews(ports []PortDescriptor, trusted bool) []pipeline.PortView {
	views := make([]pipeline.PortView, len(ports))
	for i, p := range ports {
		views[i] = pipeline.PortView{
			Name:        pipeline.Text(p.Name, trusted),
			Description: pipeline.Text(p.Description, trusted),
			Type:        pipeline.Text(p.Type, trusted),
		}
	}
	return views
}

func summaryRows(m Manifest) []pipeline.SummaryRow {
	rows := make([]pipeline.SummaryRow, len(m))
	for i, n := range m {
		rows[i] = pipeline.SummaryRow{
			Name:        n.Name,
			File:        n.FileName(),
			Category:    n.Category,
			Description: n.Description,
		}
	}
	return rows
}
