package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-nodedoc/internal/config"
)

// debouncer coalesces bursts of triggers into one signal on C.
type debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
	C     chan struct{}
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay, C: make(chan struct{}, 1)}
}

// Trigger restarts the delay. C receives once the delay passes
// without another Trigger.
func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		select {
		case d.C <- struct{}{}:
		default:
		}
	})
}

// Stop cancels a pending signal.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}

// siteWatcher watches the inputs of a build.
// Parent directories are watched rather than files so editors that
// replace files on save are still seen.
type siteWatcher struct {
	fsw   *fsnotify.Watcher
	files map[string]bool // Absolute input files
	dirs  map[string]bool // Directories where any change counts
}

// newSiteWatcher watches files (by their parent directory) and dirs.
func newSiteWatcher(files, dirs []string) (*siteWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}

	w := &siteWatcher{fsw: fsw, files: map[string]bool{}, dirs: map[string]bool{}}
	watched := map[string]bool{}

	add := func(dir string) error {
		if watched[dir] {
			return nil
		}
		watched[dir] = true
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		return nil
	}

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fsw.Close()
			return nil, err
		}
		w.files[abs] = true
		if err := add(filepath.Dir(abs)); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	for _, d := range dirs {
		abs, err := filepath.Abs(d)
		if err != nil {
			_ = fsw.Close()
			return nil, err
		}
		w.dirs[abs] = true
		if err := add(abs); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Relevant reports whether ev touches a build input.
func (w *siteWatcher) Relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(ev.Name)
	if abs, err := filepath.Abs(name); err == nil {
		name = abs
	}
	return w.files[name] || w.dirs[filepath.Dir(name)]
}

// Paths returns the watched inputs, sorted.
func (w *siteWatcher) Paths() []string {
	paths := make([]string, 0, len(w.files)+len(w.dirs))
	for f := range w.files {
		paths = append(paths, f)
	}
	for d := range w.dirs {
		paths = append(paths, d+string(filepath.Separator))
	}
	sort.Strings(paths)
	return paths
}

// existingDirs drops directories that do not exist.
func existingDirs(dirs []string) []string {
	var out []string
	for _, d := range dirs {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			out = append(out, d)
		}
	}
	return out
}

func (w *siteWatcher) Close() error {
	return w.fsw.Close()
}

// watchInputs lists the files and directories a build reads.
func watchInputs(cfg *config.Config, cfgPath string) (files, dirs []string) {
	files = append(files, cfg.Manifest.Path)
	if cfgPath != "" {
		files = append(files, cfgPath)
	}
	if cfg.Build.IntroFile != "" {
		files = append(files, cfg.Build.IntroFile)
	}
	if base := cfg.Assets.BasePath; base != "" {
		dirs = append(dirs,
			filepath.Join(base, "styles"),
			filepath.Join(base, "templates", cfg.Assets.TemplateSet),
		)
	}
	return files, dirs
}

// runWatch builds the site, then rebuilds whenever an input changes
// until ctx is cancelled. Build failures are reported and watching continues.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	flags, cfg, cfgPath, err := resolveBuild(cmdWatch, args, env)
	if err != nil || flags == nil {
		return err
	}

	if _, err := buildOnce(ctx, cfg, flags.common, env); err != nil {
		fmt.Fprintln(env.Stderr, formatError(err))
	}

	files, dirs := watchInputs(cfg, cfgPath)
	w, err := newSiteWatcher(files, existingDirs(dirs))
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	if !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "Watching %d inputs for changes (Ctrl+C to stop)\n", len(w.Paths()))
	}
	if flags.common.verbose {
		for _, p := range w.Paths() {
			fmt.Fprintf(env.Stderr, "  %s\n", p)
		}
	}

	deb := newDebouncer(flags.debounce)
	defer deb.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.Relevant(ev) {
				deb.Trigger()
			}
		case werr, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(env.Stderr, "warning: watcher: %v\n", werr)
		case <-deb.C:
			rebuild(ctx, args, env)
		}
	}
}

// rebuild re-resolves configuration so config edits take effect, then builds.
func rebuild(ctx context.Context, args []string, env *Environment) {
	flags, cfg, _, err := resolveBuild(cmdWatch, args, env)
	if err == nil && flags != nil {
		if !flags.common.quiet {
			fmt.Fprintln(env.Stdout)
		}
		_, err = buildOnce(ctx, cfg, flags.common, env)
	}
	if err != nil && ctx.Err() == nil {
		fmt.Fprintln(env.Stderr, formatError(err))
	}
}
