package graphio

import (
	"strings"
	"testing"

	"github.com/matzehuels/sgdraw/pkg/errors"
)

func TestReadDOT(t *testing.T) {
	src := `graph routes {
  // named nodes first
  hub [label="Central Hub"];
  a; b;
  hub -- a [len=2.5];
  hub -- b;
  a -- b -- c;
}`
	g, err := ReadDOT(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadDOT() error = %v", err)
	}
	if g.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", g.NodeCount())
	}
	if g.EdgeCount() != 4 {
		t.Errorf("EdgeCount() = %d, want 4", g.EdgeCount())
	}
	if got := g.Meta()["name"]; got != "routes" {
		t.Errorf(`Meta()["name"] = %v, want "routes"`, got)
	}

	hub, err := g.Node(g.IndexOfID("hub"))
	if err != nil {
		t.Fatalf("Node(hub) error = %v", err)
	}
	if hub.Label != "Central Hub" {
		t.Errorf("hub label = %q, want %q", hub.Label, "Central Hub")
	}

	e, err := g.Edge(0)
	if err != nil {
		t.Fatalf("Edge(0) error = %v", err)
	}
	if e.Length != 2.5 {
		t.Errorf("hub-a length = %v, want 2.5", e.Length)
	}
	second, _ := g.Edge(1)
	if second.Length != 1 {
		t.Errorf("default length = %v, want 1", second.Length)
	}
}

func TestReadDOTDigraph(t *testing.T) {
	src := `digraph {
  a -> b;
  b -> c [weight=3];
}`
	g, err := ReadDOT(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadDOT() error = %v", err)
	}
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Errorf("got %d nodes/%d edges, want 3/2", g.NodeCount(), g.EdgeCount())
	}

	// Direction is dropped but the attribute survives as metadata.
	e, _ := g.Edge(1)
	if got := e.Meta["weight"]; got != "3" {
		t.Errorf(`edge meta weight = %v, want "3"`, got)
	}
}

func TestReadDOTQuotingAndComments(t *testing.T) {
	src := "graph {\n" +
		"  # shell-style comment\n" +
		"  /* block\n     comment */\n" +
		"  \"node one\" -- \"node\\\"two\\\"\";\n" +
		"  rankdir = LR;\n" +
		"}\n"
	g, err := ReadDOT(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadDOT() error = %v", err)
	}
	if g.IndexOfID("node one") < 0 {
		t.Error(`missing node "node one"`)
	}
	if g.IndexOfID(`node"two"`) < 0 {
		t.Error(`missing node with escaped quotes in ID`)
	}
	if got := g.Meta()["rankdir"]; got != "LR" {
		t.Errorf(`Meta()["rankdir"] = %v, want "LR"`, got)
	}
}

func TestReadDOTDefaultsStatementIgnored(t *testing.T) {
	src := `graph {
  node [shape=circle];
  edge [color=grey];
  a -- b;
}`
	g, err := ReadDOT(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadDOT() error = %v", err)
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2 (defaults must not create nodes)", g.NodeCount())
	}
}

func TestReadDOTInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{
			name: "not dot at all",
			in:   "hello world",
			code: errors.ErrCodeParse,
		},
		{
			name: "unterminated block",
			in:   "graph { a -- b",
			code: errors.ErrCodeParse,
		},
		{
			name: "subgraph",
			in:   "graph { subgraph cluster { a; } }",
			code: errors.ErrCodeUnsupported,
		},
		{
			name: "self loop",
			in:   "graph { a -- a; }",
			code: errors.ErrCodeInvalidGraph,
		},
		{
			name: "bad len attribute",
			in:   `graph { a -- b [len="-3"]; }`,
			code: errors.ErrCodeParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDOT(strings.NewReader(tt.in))
			if err == nil {
				t.Fatal("ReadDOT() expected error, got nil")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("GetCode() = %v, want %v (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestReadDOTParallelEdgesKept(t *testing.T) {
	src := `graph { a -- b; a -- b; }`
	g, err := ReadDOT(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadDOT() error = %v", err)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2 (parallel edges preserved)", g.EdgeCount())
	}
}
