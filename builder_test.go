package nodedoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

func newTestBuilder(t *testing.T, opts ...Option) *Builder {
	t.Helper()

	b, err := NewBuilder(opts...)
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	return b
}

func readOutput(t *testing.T, dir, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	sort.Strings(names)
	return names
}

func sampleManifest() Manifest {
	return Manifest{
		gateNode(),
		{
			Name:        "Random Pulse",
			Description: "Emits triggers at random intervals.",
			Image:       "random_pulse.svg",
			Inputs:      []PortDescriptor{{Name: "Rate", Description: "Average rate", Type: "Float"}},
			Outputs:     []PortDescriptor{{Name: "Out", Description: "Trigger out", Type: "Trigger"}},
		},
		{
			Name:        "A  B",
			Description: "Selects between two inputs.",
			Image:       "ab.svg",
			Category:    "Selection",
		},
	}
}

// ---------------------------------------------------------------------------
// TestBuild - Site generation
// ---------------------------------------------------------------------------

func TestBuild_WritesOnePagePerNodePlusSummary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var log bytes.Buffer
	b := newTestBuilder(t, WithLogger(&log))

	result, err := b.Build(context.Background(), sampleManifest(), dir)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := []string{"AB.html", "Gate.html", "RandomPulse.html", "nodes.md"}
	if diff := cmp.Diff(want, listDir(t, dir)); diff != "" {
		t.Errorf("output files mismatch (-want +got):\n%s", diff)
	}

	wantFiles := []string{
		filepath.Join(dir, "Gate.html"),
		filepath.Join(dir, "RandomPulse.html"),
		filepath.Join(dir, "AB.html"),
		filepath.Join(dir, "nodes.md"),
	}
	if diff := cmp.Diff(wantFiles, result.Files); diff != "" {
		t.Errorf("Result.Files mismatch (-want +got):\n%s", diff)
	}

	wantLog := "- Gate.html\n- RandomPulse.html\n- AB.html\n-----\n- nodes.md\n"
	if diff := cmp.Diff(wantLog, log.String()); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_GateEndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m, err := ParseManifest([]byte(gateJSON))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := newTestBuilder(t).Build(context.Background(), m, dir); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	page := readOutput(t, dir, "Gate.html")
	for _, want := range []string{
		`<img src="./svg/gate.svg"`,
		"<td>In</td>\n          <td>Signal in</td>\n          <td>Audio</td>",
		"<td>Out</td>\n          <td>Signal out</td>\n          <td>Audio</td>",
		"<p><strong>Category:</strong> Logic</p>",
		`<li><a href="./Gate.html">Gate</a></li>`,
		`<h1><a href="` + DefaultBaseURL + `">` + DefaultTitle + `</a></h1>`,
		`<a href="` + DefaultFooterURL + `">` + DefaultFooterText + `</a>`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("Gate.html missing %q", want)
		}
	}

	summary := readOutput(t, dir, "nodes.md")
	wantSummary := "| Node | Category | Description |\n" +
		"|------|-----------|-------------|\n" +
		"| [`Gate`](" + DefaultBaseURL + "Gate.html) | Logic | Passes signal when open. |\n"
	if diff := cmp.Diff(wantSummary, summary); diff != "" {
		t.Errorf("nodes.md mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_SharedSidebar(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := newTestBuilder(t).Build(context.Background(), sampleManifest(), dir); err != nil {
		t.Fatal(err)
	}

	wantSidebar := `<li><a href="./Gate.html">Gate</a></li>
            <li><a href="./RandomPulse.html">Random Pulse</a></li>
            <li><a href="./AB.html">A  B</a></li>`

	for _, name := range []string{"Gate.html", "RandomPulse.html", "AB.html"} {
		page := readOutput(t, dir, name)
		if !strings.Contains(page, wantSidebar) {
			t.Errorf("%s does not contain the shared sidebar", name)
		}
	}
}

func TestBuild_MissingCategory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := newTestBuilder(t).Build(context.Background(), sampleManifest(), dir); err != nil {
		t.Fatal(err)
	}

	if strings.Contains(readOutput(t, dir, "RandomPulse.html"), "Category:") {
		t.Error("RandomPulse.html should not label a missing category")
	}
	if !strings.Contains(readOutput(t, dir, "nodes.md"), "| [`Random Pulse`]("+DefaultBaseURL+"RandomPulse.html) | - | ") {
		t.Error("nodes.md should render a missing category as -")
	}
}

func TestBuild_ZeroPorts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := Manifest{{Name: "Silence", Description: "Outputs nothing.", Image: "silence.svg"}}
	if _, err := newTestBuilder(t).Build(context.Background(), m, dir); err != nil {
		t.Fatal(err)
	}

	page := readOutput(t, dir, "Silence.html")
	if strings.Count(page, "<th>Name</th>") != 2 {
		t.Error("zero-port page should keep both table headers")
	}
	if strings.Contains(page, "<td>") {
		t.Error("zero-port page should have empty table bodies")
	}
}

func TestBuild_EmptyManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var log bytes.Buffer
	if _, err := newTestBuilder(t, WithLogger(&log)).Build(context.Background(), Manifest{}, dir); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"nodes.md"}, listDir(t, dir)); diff != "" {
		t.Errorf("output files mismatch (-want +got):\n%s", diff)
	}
	if readOutput(t, dir, "nodes.md") != "| Node | Category | Description |\n|------|-----------|-------------|\n" {
		t.Error("empty manifest should produce a header-only summary")
	}
	if log.String() != "-----\n- nodes.md\n" {
		t.Errorf("log = %q", log.String())
	}
}

func TestBuild_Idempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b := newTestBuilder(t)

	if _, err := b.Build(context.Background(), sampleManifest(), dir); err != nil {
		t.Fatal(err)
	}
	first := map[string]string{}
	for _, name := range listDir(t, dir) {
		first[name] = readOutput(t, dir, name)
	}

	if _, err := b.Build(context.Background(), sampleManifest(), dir); err != nil {
		t.Fatalf("second Build() error = %v", err)
	}
	second := map[string]string{}
	for _, name := range listDir(t, dir) {
		second[name] = readOutput(t, dir, name)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("rebuild changed output (-first +second):\n%s", diff)
	}
}

func TestBuild_CreatesNestedOutputDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "site", "docs")
	if _, err := newTestBuilder(t).Build(context.Background(), Manifest{gateNode()}, dir); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Gate.html")); err != nil {
		t.Errorf("Gate.html not written: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestBuild_Errors - Failure modes
// ---------------------------------------------------------------------------

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	t.Run("collision fails before writing", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "out")
		m := Manifest{{Name: "Random Pulse"}, {Name: "RandomPulse"}}

		_, err := newTestBuilder(t).Build(context.Background(), m, dir)
		if !errors.Is(err, ErrNameCollision) {
			t.Fatalf("Build() error = %v, want ErrNameCollision", err)
		}
		var ce *CollisionError
		if !errors.As(err, &ce) {
			t.Fatalf("error %T is not *CollisionError", err)
		}
		if diff := cmp.Diff([]int{0, 1}, ce.Collisions[0].Indices); diff != "" {
			t.Errorf("Indices mismatch (-want +got):\n%s", diff)
		}
		if _, statErr := os.Stat(dir); !errors.Is(statErr, os.ErrNotExist) {
			t.Error("output directory should not be created on collision")
		}
	})

	t.Run("allowed collision overwrites", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var log bytes.Buffer
		m := Manifest{
			{Name: "Random Pulse", Description: "first"},
			{Name: "RandomPulse", Description: "second"},
		}

		_, err := newTestBuilder(t, WithAllowCollisions(true), WithLogger(&log)).Build(context.Background(), m, dir)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if diff := cmp.Diff([]string{"RandomPulse.html", "nodes.md"}, listDir(t, dir)); diff != "" {
			t.Errorf("output files mismatch (-want +got):\n%s", diff)
		}
		if page := readOutput(t, dir, "RandomPulse.html"); !strings.Contains(page, "<p>second</p>") {
			t.Error("later node should overwrite earlier page")
		}
		if strings.Count(log.String(), "- RandomPulse.html\n") != 2 {
			t.Errorf("log = %q, want one line per node", log.String())
		}
	})

	t.Run("index page reserves index.html", func(t *testing.T) {
		t.Parallel()

		_, err := newTestBuilder(t, WithIndex(true)).Build(context.Background(), Manifest{{Name: "index"}}, t.TempDir())
		if !errors.Is(err, ErrNameCollision) {
			t.Errorf("Build() error = %v, want ErrNameCollision", err)
		}
	})

	t.Run("empty node name", func(t *testing.T) {
		t.Parallel()

		_, err := newTestBuilder(t).Build(context.Background(), Manifest{{Name: "  "}}, t.TempDir())
		if !errors.Is(err, ErrEmptyNodeName) {
			t.Errorf("Build() error = %v, want ErrEmptyNodeName", err)
		}
	})

	t.Run("empty output dir", func(t *testing.T) {
		t.Parallel()

		_, err := newTestBuilder(t).Build(context.Background(), Manifest{gateNode()}, "")
		if !errors.Is(err, ErrEmptyOutput) {
			t.Errorf("Build() error = %v, want ErrEmptyOutput", err)
		}
	})

	t.Run("output path is a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "docs")
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := newTestBuilder(t).Build(context.Background(), Manifest{gateNode()}, path)
		if !errors.Is(err, ErrCreateOutputDir) {
			t.Errorf("Build() error = %v, want ErrCreateOutputDir", err)
		}
	})

	t.Run("permission denied on parent", func(t *testing.T) {
		t.Parallel()

		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("directory permissions are not enforced")
		}
		parent := filepath.Join(t.TempDir(), "locked")
		if err := os.Mkdir(parent, 0o500); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = os.Chmod(parent, 0o700) })

		_, err := newTestBuilder(t).Build(context.Background(), Manifest{gateNode()}, filepath.Join(parent, "out"))
		if !errors.Is(err, ErrCreateOutputDir) {
			t.Errorf("Build() error = %v, want ErrCreateOutputDir", err)
		}
		if !errors.Is(err, os.ErrPermission) {
			t.Errorf("Build() error = %v, want it to wrap os.ErrPermission", err)
		}
	})

	t.Run("page write failure keeps earlier files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.Mkdir(filepath.Join(dir, "RandomPulse.html"), 0o750); err != nil {
			t.Fatal(err)
		}
		result, err := newTestBuilder(t).Build(context.Background(), sampleManifest(), dir)
		if !errors.Is(err, ErrWritePage) {
			t.Fatalf("Build() error = %v, want ErrWritePage", err)
		}
		if diff := cmp.Diff([]string{filepath.Join(dir, "Gate.html")}, result.Files); diff != "" {
			t.Errorf("Result.Files mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("summary write failure", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.Mkdir(filepath.Join(dir, "nodes.md"), 0o750); err != nil {
			t.Fatal(err)
		}
		_, err := newTestBuilder(t).Build(context.Background(), Manifest{gateNode()}, dir)
		if !errors.Is(err, ErrWriteSummary) {
			t.Errorf("Build() error = %v, want ErrWriteSummary", err)
		}
	})

	t.Run("cancelled context writes nothing", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		dir := filepath.Join(t.TempDir(), "out")

		_, err := newTestBuilder(t).Build(ctx, Manifest{gateNode()}, dir)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Build() error = %v, want context.Canceled", err)
		}
		if _, statErr := os.Stat(dir); !errors.Is(statErr, os.ErrNotExist) {
			t.Error("cancelled build should not create the output directory")
		}
	})
}

// ---------------------------------------------------------------------------
// TestBuild_Escaping - Safe and trusted text
// ---------------------------------------------------------------------------

func TestBuild_Escaping(t *testing.T) {
	t.Parallel()

	m := Manifest{{
		Name:        "Less <Than>",
		Description: "Outputs <b>true</b> when a < b.",
		Image:       "lt.svg",
	}}

	t.Run("escaped by default", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if _, err := newTestBuilder(t).Build(context.Background(), m, dir); err != nil {
			t.Fatal(err)
		}
		page := readOutput(t, dir, "Less<Than>.html")
		if strings.Contains(page, "<b>true</b>") {
			t.Error("description markup should be escaped")
		}
		if !strings.Contains(page, "<h2>Less &lt;Than&gt;</h2>") {
			t.Error("name should be escaped in the heading")
		}
	})

	t.Run("trusted passes markup through", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if _, err := newTestBuilder(t, WithTrustedHTML(true)).Build(context.Background(), m, dir); err != nil {
			t.Fatal(err)
		}
		page := readOutput(t, dir, "Less<Than>.html")
		if !strings.Contains(page, "<p>Outputs <b>true</b> when a < b.</p>") {
			t.Error("trusted description should be verbatim")
		}
	})

	t.Run("summary is not HTML-escaped", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if _, err := newTestBuilder(t).Build(context.Background(), m, dir); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(readOutput(t, dir, "nodes.md"), "Outputs <b>true</b> when a < b.") {
			t.Error("nodes.md should carry raw description text")
		}
	})

	t.Run("colon in name keeps a relative href", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		colon := Manifest{{Name: "Trigger: Any"}, gateNode()}
		if _, err := newTestBuilder(t).Build(context.Background(), colon, dir); err != nil {
			t.Fatal(err)
		}
		page := readOutput(t, dir, "Gate.html")
		if !strings.Contains(page, `<li><a href="./Trigger:Any.html">Trigger: Any</a></li>`) {
			t.Error("sidebar link for Trigger: Any should be ./Trigger:Any.html")
		}
		if strings.Contains(page, "ZgotmplZ") {
			t.Error("sidebar href was rejected as an unsafe URL")
		}
	})
}

// ---------------------------------------------------------------------------
// TestBuild_Extras - index.html and style.css
// ---------------------------------------------------------------------------

func TestBuild_Extras(t *testing.T) {
	t.Parallel()

	t.Run("index and style", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		intro := filepath.Join(t.TempDir(), "intro.md")
		if err := os.WriteFile(intro, []byte("# Branches\n\nConditional nodes."), 0o644); err != nil {
			t.Fatal(err)
		}

		var log bytes.Buffer
		b := newTestBuilder(t,
			WithLogger(&log),
			WithIndex(true),
			WithIntro(intro),
			WithStyleOutput(true),
			WithStyle("dark"),
		)
		if _, err := b.Build(context.Background(), Manifest{gateNode()}, dir); err != nil {
			t.Fatalf("Build() error = %v", err)
		}

		want := []string{"Gate.html", "index.html", "nodes.md", "style.css"}
		if diff := cmp.Diff(want, listDir(t, dir)); diff != "" {
			t.Errorf("output files mismatch (-want +got):\n%s", diff)
		}

		wantLog := "- Gate.html\n-----\n- nodes.md\n- index.html\n- style.css\n"
		if diff := cmp.Diff(wantLog, log.String()); diff != "" {
			t.Errorf("log mismatch (-want +got):\n%s", diff)
		}

		index := readOutput(t, dir, "index.html")
		for _, s := range []string{`<h1 id="branches">Branches</h1>`, "<table>", "<td>Logic</td>"} {
			if !strings.Contains(index, s) {
				t.Errorf("index.html missing %q", s)
			}
		}
		if !strings.HasPrefix(readOutput(t, dir, "style.css"), "/* nodedoc dark style */") {
			t.Error("style.css should hold the dark style")
		}
	})

	t.Run("missing intro file", func(t *testing.T) {
		t.Parallel()

		b := newTestBuilder(t, WithIndex(true), WithIntro(filepath.Join(t.TempDir(), "missing.md")))
		_, err := b.Build(context.Background(), Manifest{gateNode()}, t.TempDir())
		if !errors.Is(err, ErrIntroRead) {
			t.Errorf("Build() error = %v, want ErrIntroRead", err)
		}
	})

	t.Run("style from file path", func(t *testing.T) {
		t.Parallel()

		css := filepath.Join(t.TempDir(), "site.css")
		if err := os.WriteFile(css, []byte("body{}"), 0o644); err != nil {
			t.Fatal(err)
		}
		dir := t.TempDir()
		b := newTestBuilder(t, WithStyleOutput(true), WithStyle(css))
		if _, err := b.Build(context.Background(), Manifest{}, dir); err != nil {
			t.Fatal(err)
		}
		if got := readOutput(t, dir, "style.css"); got != "body{}" {
			t.Errorf("style.css = %q, want body{}", got)
		}
	})
}

// ---------------------------------------------------------------------------
// TestNewBuilder - Construction errors
// ---------------------------------------------------------------------------

func TestNewBuilder_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{
			name:    "unknown style",
			opts:    []Option{WithStyleOutput(true), WithStyle("neon")},
			wantErr: ErrStyleNotFound,
		},
		{
			name:    "unknown style ignored without style output",
			opts:    []Option{WithStyle("neon")},
			wantErr: nil,
		},
		{
			name:    "unknown template set",
			opts:    []Option{WithTemplateSet("fancy")},
			wantErr: ErrTemplateSetNotFound,
		},
		{
			name:    "missing asset path",
			opts:    []Option{WithAssetPath("/nonexistent/nodedoc/assets")},
			wantErr: ErrInvalidAssetPath,
		},
		{
			name:    "broken template",
			opts:    []Option{WithTemplates(NewTemplateSet("bad", "{{ .Node", "", ""))},
			wantErr: ErrRender,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewBuilder(tt.opts...)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("NewBuilder() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewBuilder() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuild_CustomSite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b := newTestBuilder(t, WithSite(Site{
		Title:   "Branches",
		BaseURL: "https://example.com/nodes/",
	}))
	if _, err := b.Build(context.Background(), Manifest{gateNode()}, dir); err != nil {
		t.Fatal(err)
	}

	page := readOutput(t, dir, "Gate.html")
	if !strings.Contains(page, `<h1><a href="`+DefaultBaseURL+`">Branches</a></h1>`) {
		t.Error("home URL should keep its default")
	}
	if strings.Contains(page, "<hr>") {
		t.Error("empty footer text should omit the footer")
	}
	if !strings.Contains(readOutput(t, dir, "nodes.md"), "(https://example.com/nodes/Gate.html)") {
		t.Error("nodes.md should use the custom base URL")
	}
}

// ---------------------------------------------------------------------------
// Properties
// ---------------------------------------------------------------------------

func TestBuild_Properties(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	b := newTestBuilder(t)
	run := 0

	rapid.Check(t, func(rt *rapid.T) {
		names := rapid.SliceOfNDistinct(
			rapid.StringMatching(`[A-Za-z][A-Za-z0-9]{0,7}( [A-Za-z0-9]{1,4})?`),
			0, 8,
			func(s string) string { return strings.ToLower(Sanitize(s)) },
		).Draw(rt, "names")

		m := make(Manifest, len(names))
		for i, n := range names {
			m[i] = NodeDescriptor{
				Name:     n,
				Image:    Sanitize(n) + ".svg",
				Category: rapid.SampledFrom([]string{"", "Logic", "Selection"}).Draw(rt, "category"),
			}
		}

		run++
		dir := filepath.Join(base, fmt.Sprintf("run%d", run))
		var log bytes.Buffer
		b.cfg.logger = &log
		result, err := b.Build(context.Background(), m, dir)
		if err != nil {
			rt.Fatalf("Build() error = %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			rt.Fatal(err)
		}
		if len(entries) != len(m)+1 {
			rt.Fatalf("wrote %d files, want %d", len(entries), len(m)+1)
		}
		if len(result.Files) != len(m)+1 {
			rt.Fatalf("Result.Files has %d entries, want %d", len(result.Files), len(m)+1)
		}

		lines := strings.Split(strings.TrimSuffix(log.String(), "\n"), "\n")
		if len(lines) != len(m)+2 {
			rt.Fatalf("log has %d lines, want %d", len(lines), len(m)+2)
		}
		for i, n := range m {
			if lines[i] != "- "+n.FileName() {
				rt.Fatalf("log line %d = %q, want %q", i, lines[i], "- "+n.FileName())
			}
		}

		summary, err := os.ReadFile(filepath.Join(dir, SummaryFile))
		if err != nil {
			rt.Fatal(err)
		}
		rows := strings.Split(strings.TrimSuffix(string(summary), "\n"), "\n")
		if len(rows) != len(m)+2 {
			rt.Fatalf("nodes.md has %d lines, want %d", len(rows), len(m)+2)
		}
	})
}
