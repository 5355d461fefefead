package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/graph"
)

// isolate points the config and cache directories at empty temporary
// directories and runs the test from a fresh working directory.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	oldWd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
	return dir
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (*CLI, string, error) {
	t.Helper()
	var logs, out bytes.Buffer
	c := New(&logs, log.InfoLevel)
	t.Cleanup(func() { _ = c.Close() })

	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&logs)
	err := root.ExecuteContext(context.Background())
	return c, out.String(), err
}

// writeTree writes a root with two children to dir/name.
func writeTree(t *testing.T, dir, name string) string {
	t.Helper()
	g := graph.New()
	for _, id := range []string{"root", "left", "right"} {
		if err := g.AddNode(graph.Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	for _, child := range []string{"left", "right"} {
		if err := g.AddChild("root", child); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(dir, name)
	if err := graph.WriteFile(path, g); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()

	for _, name := range []string{"layout", "render", "preview", "serve", "cache", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.Use != appName {
		t.Errorf("root Use = %q, want %q", root.Use, appName)
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	dir := isolate(t)
	if err := os.MkdirAll(".arbor", 0755); err != nil {
		t.Fatal(err)
	}
	conf := "[layout]\nalgorithm = \"lombardi\"\nseed = 7\n"
	if err := os.WriteFile(filepath.Join(".arbor", "config.toml"), []byte(conf), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ARBOR_LAYOUT_SEED", "9")
	input := writeTree(t, dir, "tree.json")

	c, _, err := execute(t, "layout", input, "--no-cache", "-a", "tree")
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}

	cfg := c.Config()
	if cfg.Layout.Algorithm != "tree" {
		t.Errorf("algorithm = %q, want tree from the flag", cfg.Layout.Algorithm)
	}
	if cfg.Layout.Seed != 9 {
		t.Errorf("seed = %d, want 9 from the environment", cfg.Layout.Seed)
	}
}

func TestLayoutCommand(t *testing.T) {
	dir := isolate(t)
	input := writeTree(t, dir, "tree.toml")

	_, out, err := execute(t, "layout", input, "-a", "tree", "--result", filepath.Join(dir, "result.json"))
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}

	outputPath := filepath.Join(dir, "tree.layout.toml")
	g, err := graph.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if x, y := g.Position("root"); x != 0.5 || y != 0.05 {
		t.Errorf("root at (%v, %v), want (0.5, 0.05)", x, y)
	}
	if _, err := os.Stat(filepath.Join(dir, "result.json")); err != nil {
		t.Errorf("result file not written: %v", err)
	}
	for _, want := range []string{"Layout complete", outputPath, "fresh"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// The second run is served from the file cache.
	_, out, err = execute(t, "layout", input, "-a", "tree")
	if err != nil {
		t.Fatalf("second layout failed: %v", err)
	}
	if !strings.Contains(out, iconCached) {
		t.Errorf("second run should be cached:\n%s", out)
	}
}

func TestLayoutCommandErrors(t *testing.T) {
	dir := isolate(t)
	input := writeTree(t, dir, "tree.json")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing file", []string{"layout", filepath.Join(dir, "missing.json")}, "not found"},
		{"bad extension", []string{"layout", filepath.Join(dir, "tree.yaml")}, ".json or .toml"},
		{"unknown algorithm", []string{"layout", input, "-a", "spring"}, "algorithm"},
		{"unknown root", []string{"layout", input, "--root", "nope"}, "nope"},
		{"jitter out of range", []string{"layout", input, "--jitter", "2"}, "jitter"},
		{"unknown cache", []string{"layout", input, "--cache", "memcached"}, "unknown cache backend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestRenderDOT(t *testing.T) {
	dir := isolate(t)
	input := writeTree(t, dir, "tree.json")

	_, out, err := execute(t, "render", input, "-f", "dot", "-a", "tree", "--no-cache", "--scale", "2")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tree.dot"))
	if err != nil {
		t.Fatalf("read dot: %v", err)
	}
	src := string(data)
	for _, want := range []string{`"root" [label="root", pos="1.0000,1.9000!"]`, `"root" -> "left"`} {
		if !strings.Contains(src, want) {
			t.Errorf("DOT missing %q:\n%s", want, src)
		}
	}
	if !strings.Contains(out, "Render complete") {
		t.Errorf("output = %q, want completion message", out)
	}
}

func TestRenderErrors(t *testing.T) {
	dir := isolate(t)
	input := writeTree(t, dir, "tree.json")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown format", []string{"render", input, "-f", "gif"}, "unknown format"},
		{"output with two formats", []string{"render", input, "-f", "dot,svg", "-o", "x"}, "single format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"", []string{FormatSVG}, false},
		{"svg", []string{FormatSVG}, false},
		{"DOT, png", []string{FormatDOT, FormatPNG}, false},
		{"svg,svg", []string{FormatSVG}, false},
		{"jpeg", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseFormats(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFormats(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCachePath(t *testing.T) {
	dir := isolate(t)
	cacheDir := filepath.Join(dir, "layouts")

	_, out, err := execute(t, "cache", "path", "--cache-dir", cacheDir)
	if err != nil {
		t.Fatalf("cache path failed: %v", err)
	}
	if strings.TrimSpace(out) != cacheDir {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), cacheDir)
	}
}

func TestCacheClear(t *testing.T) {
	dir := isolate(t)
	cacheDir := filepath.Join(dir, "layouts")

	fc, err := cache.NewFileCache(cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"a", "b"} {
		if err := fc.Set(ctx, key, []byte("{}"), 0); err != nil {
			t.Fatal(err)
		}
	}

	_, out, err := execute(t, "cache", "clear", "--cache-dir", cacheDir)
	if err != nil {
		t.Fatalf("cache clear failed: %v", err)
	}
	if !strings.Contains(out, "Cleared 2 cached layouts") {
		t.Errorf("output = %q, want 2 cleared", out)
	}
	if _, ok, _ := fc.Get(ctx, "a"); ok {
		t.Error("entry should be gone after clear")
	}

	_, out, err = execute(t, "cache", "clear", "--cache", "none")
	if err != nil {
		t.Fatalf("cache clear on none failed: %v", err)
	}
	if !strings.Contains(out, "cannot be cleared") {
		t.Errorf("output = %q, want a warning", out)
	}
}

func TestLogFile(t *testing.T) {
	dir := isolate(t)
	input := writeTree(t, dir, "tree.json")
	logPath := filepath.Join(dir, "arbor.log")

	c, _, err := execute(t, "layout", input, "--no-cache", "-a", "tree", "--log-file", logPath)
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "Layout committed") {
		t.Errorf("log file = %q, want the layout record", data)
	}
}
