package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/sgdraw/pkg/drawing"
	"github.com/matzehuels/sgdraw/pkg/graphio"
)

const testGraphJSON = `{
	"nodes": [{"id": "a"}, {"id": "b"}, {"id": "c"}, {"id": "d"}],
	"edges": [
		{"source": "a", "target": "b"},
		{"source": "b", "target": "c"},
		{"source": "c", "target": "d"},
		{"source": "d", "target": "a"}
	]
}`

// writeGraph drops a small test graph into a fresh directory and
// isolates the config lookup from the host environment.
func writeGraph(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(t.TempDir(), "config"))
	path := filepath.Join(t.TempDir(), "g.json")
	if err := os.WriteFile(path, []byte(testGraphJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	c := testCLI()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func TestLayoutCommand(t *testing.T) {
	graphPath := writeGraph(t)

	err := runCommand(t, "layout", graphPath,
		"--no-cache", "--strategy", "full", "--iterations", "30", "--seed", "42")
	if err != nil {
		t.Fatalf("layout command: %v", err)
	}

	doc, err := graphio.ReadLayoutFile(layoutPath(graphPath))
	if err != nil {
		t.Fatalf("read layout output: %v", err)
	}
	if err := doc.Validate(); err != nil {
		t.Errorf("layout output invalid: %v", err)
	}
	if len(doc.Nodes) != 4 {
		t.Errorf("layout has %d nodes, want 4", len(doc.Nodes))
	}
	if doc.Geometry != drawing.GeometryEuclidean {
		t.Errorf("layout geometry = %q, want %q", doc.Geometry, drawing.GeometryEuclidean)
	}
	if doc.Dimension != 2 {
		t.Errorf("layout dimension = %d, want 2", doc.Dimension)
	}
}

func TestLayoutCommandOutputFlag(t *testing.T) {
	graphPath := writeGraph(t)
	out := filepath.Join(filepath.Dir(graphPath), "custom.json")

	err := runCommand(t, "layout", graphPath, "-o", out,
		"--no-cache", "--strategy", "full", "--iterations", "20")
	if err != nil {
		t.Fatalf("layout command: %v", err)
	}

	if _, err := os.Stat(out); err != nil {
		t.Errorf("output file not written: %v", err)
	}
}

func TestLayoutCommandMissingInput(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(t.TempDir(), "config"))

	err := runCommand(t, "layout", filepath.Join(t.TempDir(), "missing.json"), "--no-cache")
	if err == nil {
		t.Error("layout command with missing input should error")
	}
}

func TestLayoutCommandGeometryFlag(t *testing.T) {
	graphPath := writeGraph(t)

	err := runCommand(t, "layout", graphPath, "-g", "torus2d",
		"--no-cache", "--strategy", "full", "--iterations", "20")
	if err != nil {
		t.Fatalf("layout command: %v", err)
	}

	doc, err := graphio.ReadLayoutFile(layoutPath(graphPath))
	if err != nil {
		t.Fatalf("read layout output: %v", err)
	}
	if doc.Geometry != drawing.GeometryTorus {
		t.Errorf("layout geometry = %q, want %q", doc.Geometry, drawing.GeometryTorus)
	}
}

func TestRenderCommand(t *testing.T) {
	graphPath := writeGraph(t)

	err := runCommand(t, "render", graphPath, "--format", "svg,dot",
		"--no-cache", "--strategy", "full", "--iterations", "20")
	if err != nil {
		t.Fatalf("render command: %v", err)
	}

	base := strings.TrimSuffix(graphPath, ".json")

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("read svg output: %v", err)
	}
	if !strings.HasPrefix(string(svg), "<svg") {
		t.Errorf("svg output starts with %q, want <svg", string(svg[:min(len(svg), 10)]))
	}

	dot, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatalf("read dot output: %v", err)
	}
	if !strings.HasPrefix(string(dot), "graph G {") {
		t.Errorf("dot output starts with %q, want graph G {", string(dot[:min(len(dot), 12)]))
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	graphPath := writeGraph(t)

	if err := runCommand(t, "render", graphPath, "--format", "gif", "--no-cache"); err == nil {
		t.Error("render command with invalid format should error")
	}
}

func TestVisualizeCommand(t *testing.T) {
	graphPath := writeGraph(t)

	err := runCommand(t, "layout", graphPath,
		"--no-cache", "--strategy", "full", "--iterations", "20")
	if err != nil {
		t.Fatalf("layout command: %v", err)
	}

	if err := runCommand(t, "visualize", layoutPath(graphPath)); err != nil {
		t.Fatalf("visualize command: %v", err)
	}

	svgPath := strings.TrimSuffix(graphPath, ".json") + ".svg"
	svg, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatalf("read svg output: %v", err)
	}
	if !strings.Contains(string(svg), "<circle") {
		t.Error("svg output missing node circles")
	}
}

func TestStressCommand(t *testing.T) {
	graphPath := writeGraph(t)

	err := runCommand(t, "layout", graphPath,
		"--no-cache", "--strategy", "full", "--iterations", "20")
	if err != nil {
		t.Fatalf("layout command: %v", err)
	}

	if err := runCommand(t, "stress", layoutPath(graphPath)); err != nil {
		t.Fatalf("stress command: %v", err)
	}
}

func TestStressCommandMissingGraph(t *testing.T) {
	graphPath := writeGraph(t)

	err := runCommand(t, "layout", graphPath,
		"--no-cache", "--strategy", "full", "--iterations", "20")
	if err != nil {
		t.Fatalf("layout command: %v", err)
	}

	// Remove the graph so inference has nothing to find.
	if err := os.Remove(graphPath); err != nil {
		t.Fatal(err)
	}
	if err := runCommand(t, "stress", layoutPath(graphPath)); err == nil {
		t.Error("stress command without a graph file should error")
	}
}
