package graphio

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/sgdraw/pkg/errors"
	"github.com/matzehuels/sgdraw/pkg/graph"
)

// ============================================================================
// DOT IMPORT
// ============================================================================

// ReadDOT decodes a Graphviz DOT graph from r.
//
// The input is first validated with Graphviz itself, then the node and edge
// statements are read from the source. Supported statements are node
// declarations, edge declarations and chains (both -- and ->), attribute
// lists, and graph-level attribute assignments. Edge direction is ignored,
// the "len" attribute becomes the edge length (default 1), and a node
// "label" attribute becomes the node label. Remaining attributes land in
// the node or edge metadata as strings.
//
// Subgraphs, ports, and HTML-like labels are not supported and return an
// error with code UNSUPPORTED.
func ReadDOT(r io.Reader) (*graph.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "read DOT source")
	}
	if err := validateDOT(data); err != nil {
		return nil, err
	}

	toks, err := lexDOT(data)
	if err != nil {
		return nil, err
	}
	p := &dotParser{
		toks:  toks,
		g:     graph.New(nil),
		index: make(map[string]graph.NodeIndex),
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.g, nil
}

// validateDOT runs the source through Graphviz so malformed files fail with
// the parser's own diagnostics before the statement scan.
func validateDOT(data []byte) error {
	g, err := graphviz.ParseBytes(data)
	if err != nil {
		return errors.Wrap(errors.ErrCodeParse, err, "parse DOT")
	}
	_ = g.Close()
	return nil
}

// ImportDOT reads a graph from a Graphviz DOT file.
func ImportDOT(path string) (*graph.Graph, error) {
	if err := errors.ValidateFilePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	g, err := ReadDOT(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "import %s", path)
	}
	return g, nil
}

// ============================================================================
// DOT TOKENS
// ============================================================================

type dotTokenKind int

const (
	tokEOF dotTokenKind = iota
	tokID
	tokEdgeOp
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokEquals
	tokSemi
	tokComma
)

type dotToken struct {
	kind dotTokenKind
	text string
	line int
}

func lexDOT(data []byte) ([]dotToken, error) {
	src := []rune(string(data))
	var toks []dotToken
	line := 1
	i := 0

	fail := func(msg string) error {
		return errors.New(errors.ErrCodeParse, "line %d: %s", line, msg)
	}

	for i < len(src) {
		c := src[i]
		switch {
		case c == '\n':
			line++
			i++
		case unicode.IsSpace(c):
			i++
		case c == '#':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			i += 2
			for i < len(src) && !(src[i] == '*' && i+1 < len(src) && src[i+1] == '/') {
				if src[i] == '\n' {
					line++
				}
				i++
			}
			if i >= len(src) {
				return nil, fail("unterminated comment")
			}
			i += 2
		case c == '{':
			toks = append(toks, dotToken{tokLBrace, "{", line})
			i++
		case c == '}':
			toks = append(toks, dotToken{tokRBrace, "}", line})
			i++
		case c == '[':
			toks = append(toks, dotToken{tokLBracket, "[", line})
			i++
		case c == ']':
			toks = append(toks, dotToken{tokRBracket, "]", line})
			i++
		case c == '=':
			toks = append(toks, dotToken{tokEquals, "=", line})
			i++
		case c == ';':
			toks = append(toks, dotToken{tokSemi, ";", line})
			i++
		case c == ',':
			toks = append(toks, dotToken{tokComma, ",", line})
			i++
		case c == '<':
			return nil, errors.New(errors.ErrCodeUnsupported, "line %d: HTML-like labels are not supported", line)
		case c == '"':
			text, rest, nl, err := lexQuoted(src[i+1:], line)
			if err != nil {
				return nil, err
			}
			toks = append(toks, dotToken{tokID, text, line})
			line += nl
			i = len(src) - len(rest)
		case c == '-':
			if i+1 < len(src) && (src[i+1] == '-' || src[i+1] == '>') {
				toks = append(toks, dotToken{tokEdgeOp, string(src[i : i+2]), line})
				i += 2
				break
			}
			if i+1 < len(src) && (unicode.IsDigit(src[i+1]) || src[i+1] == '.') {
				start := i
				i++
				for i < len(src) && (unicode.IsDigit(src[i]) || src[i] == '.') {
					i++
				}
				toks = append(toks, dotToken{tokID, string(src[start:i]), line})
				break
			}
			return nil, fail("unexpected '-'")
		case isDOTIDRune(c):
			start := i
			for i < len(src) && isDOTIDRune(src[i]) {
				i++
			}
			toks = append(toks, dotToken{tokID, string(src[start:i]), line})
		case c == ':':
			return nil, errors.New(errors.ErrCodeUnsupported, "line %d: ports are not supported", line)
		default:
			return nil, fail(fmt.Sprintf("unexpected character %q", c))
		}
	}
	toks = append(toks, dotToken{tokEOF, "", line})
	return toks, nil
}

// lexQuoted consumes a double-quoted DOT string starting after the opening
// quote. It returns the unescaped text, the unread remainder, and the
// number of newlines crossed.
func lexQuoted(src []rune, line int) (string, []rune, int, error) {
	var b strings.Builder
	nl := 0
	for i := 0; i < len(src); i++ {
		switch c := src[i]; c {
		case '"':
			return b.String(), src[i+1:], nl, nil
		case '\\':
			if i+1 >= len(src) {
				break
			}
			i++
			switch src[i] {
			case '"':
				b.WriteRune('"')
			case '\\':
				b.WriteRune('\\')
			case '\n':
				// Line continuation: the backslash-newline pair vanishes.
				nl++
			default:
				// Graphviz keeps unknown escapes verbatim.
				b.WriteRune('\\')
				b.WriteRune(src[i])
			}
		case '\n':
			nl++
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}
	return "", nil, nl, errors.New(errors.ErrCodeParse, "line %d: unterminated string", line)
}

func isDOTIDRune(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '.'
}

// ============================================================================
// DOT STATEMENTS
// ============================================================================

type dotParser struct {
	toks  []dotToken
	pos   int
	g     *graph.Graph
	index map[string]graph.NodeIndex
}

func (p *dotParser) peek() dotToken { return p.toks[p.pos] }

func (p *dotParser) next() dotToken {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *dotParser) errf(t dotToken, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return errors.New(errors.ErrCodeParse, "line %d: %s", t.line, msg)
}

func (p *dotParser) parse() error {
	if t := p.peek(); t.kind == tokID && strings.EqualFold(t.text, "strict") {
		p.next()
	}
	head := p.next()
	if head.kind != tokID || (!strings.EqualFold(head.text, "graph") && !strings.EqualFold(head.text, "digraph")) {
		return p.errf(head, "expected 'graph' or 'digraph', got %q", head.text)
	}
	if t := p.peek(); t.kind == tokID {
		p.g.Meta()["name"] = p.next().text
	}
	if t := p.next(); t.kind != tokLBrace {
		return p.errf(t, "expected '{', got %q", t.text)
	}

	for {
		t := p.peek()
		switch t.kind {
		case tokRBrace:
			p.next()
			if end := p.next(); end.kind != tokEOF {
				return p.errf(end, "trailing content after closing '}'")
			}
			return nil
		case tokSemi:
			p.next()
		case tokLBrace:
			return errors.New(errors.ErrCodeUnsupported, "line %d: subgraphs are not supported", t.line)
		case tokID:
			if err := p.parseStatement(); err != nil {
				return err
			}
		case tokEOF:
			return p.errf(t, "unexpected end of input")
		default:
			return p.errf(t, "unexpected token %q", t.text)
		}
	}
}

// parseStatement handles one node, edge, assignment, or defaults statement.
func (p *dotParser) parseStatement() error {
	first := p.next()

	if strings.EqualFold(first.text, "subgraph") {
		return errors.New(errors.ErrCodeUnsupported, "line %d: subgraphs are not supported", first.line)
	}

	// Graph-level attribute: ID = value.
	if p.peek().kind == tokEquals {
		p.next()
		val := p.next()
		if val.kind != tokID {
			return p.errf(val, "expected attribute value, got %q", val.text)
		}
		p.g.Meta()[first.text] = val.text
		return nil
	}

	// Default attribute statements apply to later declarations in Graphviz.
	// Layout has no use for them, so the list is parsed and dropped.
	isDefaults := strings.EqualFold(first.text, "graph") ||
		strings.EqualFold(first.text, "node") ||
		strings.EqualFold(first.text, "edge")
	if isDefaults && p.peek().kind == tokLBracket {
		_, err := p.parseAttrLists()
		return err
	}

	chain := []graph.NodeIndex{}
	u, err := p.ensureNode(first)
	if err != nil {
		return err
	}
	chain = append(chain, u)

	for p.peek().kind == tokEdgeOp {
		p.next()
		id := p.next()
		if id.kind != tokID {
			return p.errf(id, "expected node after edge operator, got %q", id.text)
		}
		v, err := p.ensureNode(id)
		if err != nil {
			return err
		}
		chain = append(chain, v)
	}

	attrs, err := p.parseAttrLists()
	if err != nil {
		return err
	}

	if len(chain) == 1 {
		return p.applyNodeAttrs(chain[0], attrs)
	}
	for k := 0; k+1 < len(chain); k++ {
		if err := p.addEdge(first, chain[k], chain[k+1], attrs); err != nil {
			return err
		}
	}
	return nil
}

// parseAttrLists consumes zero or more [key=value, ...] lists.
func (p *dotParser) parseAttrLists() (map[string]string, error) {
	var attrs map[string]string
	for p.peek().kind == tokLBracket {
		p.next()
		for {
			t := p.next()
			if t.kind == tokRBracket {
				break
			}
			if t.kind == tokComma || t.kind == tokSemi {
				continue
			}
			if t.kind != tokID {
				return nil, p.errf(t, "expected attribute name, got %q", t.text)
			}
			if eq := p.next(); eq.kind != tokEquals {
				return nil, p.errf(eq, "expected '=' after attribute %q", t.text)
			}
			val := p.next()
			if val.kind != tokID {
				return nil, p.errf(val, "expected value for attribute %q", t.text)
			}
			if attrs == nil {
				attrs = make(map[string]string)
			}
			attrs[t.text] = val.text
		}
	}
	return attrs, nil
}

func (p *dotParser) ensureNode(t dotToken) (graph.NodeIndex, error) {
	if u, ok := p.index[t.text]; ok {
		return u, nil
	}
	if err := errors.ValidateNodeID(t.text); err != nil {
		return 0, err
	}
	u := p.g.AddNode(graph.Node{ID: t.text})
	p.index[t.text] = u
	return u, nil
}

func (p *dotParser) applyNodeAttrs(u graph.NodeIndex, attrs map[string]string) error {
	if len(attrs) == 0 {
		return nil
	}
	n, err := p.g.Node(u)
	if err != nil {
		return err
	}
	for k, v := range attrs {
		if k == "label" {
			n.Label = v
			continue
		}
		n.Meta[k] = v
	}
	return nil
}

func (p *dotParser) addEdge(at dotToken, u, v graph.NodeIndex, attrs map[string]string) error {
	length := 1.0
	var meta graph.Metadata
	for k, val := range attrs {
		if k == "len" {
			l, err := strconv.ParseFloat(val, 64)
			if err != nil || l <= 0 || math.IsInf(l, 0) || math.IsNaN(l) {
				return p.errf(at, "edge attribute len=%q must be a finite positive number", val)
			}
			length = l
			continue
		}
		if meta == nil {
			meta = graph.Metadata{}
		}
		meta[k] = val
	}
	if _, err := p.g.AddEdge(graph.Edge{Source: u, Target: v, Length: length, Meta: meta}); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGraph, err, "line %d: edge", at.line)
	}
	return nil
}
