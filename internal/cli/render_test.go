package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"dot only", "dot", []string{"dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Errorf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
				return
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid svg", []string{"svg"}, false},
		{"valid pdf", []string{"pdf"}, false},
		{"valid png", []string{"png"}, false},
		{"valid dot", []string{"dot"}, false},
		{"valid multiple", []string{"svg", "pdf", "png", "dot"}, false},
		{"invalid format", []string{"invalid"}, true},
		{"mixed valid invalid", []string{"svg", "invalid"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEngine(t *testing.T) {
	tests := []struct {
		name    string
		engine  string
		wantErr bool
	}{
		{"hand", "hand", false},
		{"graphviz", "graphviz", false},
		{"invalid", "invalid", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateEngine(tt.engine)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateEngine(%q) error = %v, wantErr %v", tt.engine, err, tt.wantErr)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"empty output strips input ext", "", "graph.json", "graph"},
		{"empty output with dir", "", "data/graph.json", "data/graph"},
		{"output with format ext stripped", "out.svg", "graph.json", "out"},
		{"output without ext kept", "out", "graph.json", "out"},
		{"output with unrelated ext kept", "out.final", "graph.json", "out.final"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestLayoutPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"graph.json", "graph.layout.json"},
		{"graph.dot", "graph.layout.json"},
		{"data/graph.json", "data/graph.layout.json"},
	}

	for _, tt := range tests {
		if got := layoutPath(tt.input); got != tt.want {
			t.Errorf("layoutPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestVisualizeBase(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		layoutFile string
		want       string
	}{
		{"strips layout extensions", "", "graph.layout.json", "graph"},
		{"plain json input", "", "graph.json", "graph"},
		{"explicit output wins", "out.svg", "graph.layout.json", "out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := visualizeBase(tt.output, tt.layoutFile); got != tt.want {
				t.Errorf("visualizeBase(%q, %q) = %q, want %q", tt.output, tt.layoutFile, got, tt.want)
			}
		})
	}
}

func TestInferGraphPath(t *testing.T) {
	tmp := t.TempDir()
	graphPath := filepath.Join(tmp, "g.json")
	if err := os.WriteFile(graphPath, []byte(`{"nodes":[],"edges":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := inferGraphPath(filepath.Join(tmp, "g.layout.json"))
	if err != nil {
		t.Fatalf("inferGraphPath() error: %v", err)
	}
	if got != graphPath {
		t.Errorf("inferGraphPath() = %q, want %q", got, graphPath)
	}
}

func TestInferGraphPathMissing(t *testing.T) {
	if _, err := inferGraphPath(filepath.Join(t.TempDir(), "g.layout.json")); err == nil {
		t.Error("inferGraphPath() with no graph file should error")
	}
}

func TestBuildRenderOptions(t *testing.T) {
	if got := buildRenderOptions(renderParams{}); len(got) != 0 {
		t.Errorf("buildRenderOptions(zero) = %d options, want 0", len(got))
	}
	if got := buildRenderOptions(renderParams{labels: true}); len(got) != 1 {
		t.Errorf("buildRenderOptions(labels) = %d options, want 1", len(got))
	}
	if got := buildRenderOptions(renderParams{width: 400}); len(got) != 1 {
		t.Errorf("buildRenderOptions(width) = %d options, want 1", len(got))
	}
	if got := buildRenderOptions(renderParams{width: 400, height: 300, labels: true}); len(got) != 2 {
		t.Errorf("buildRenderOptions(size+labels) = %d options, want 2", len(got))
	}
}
