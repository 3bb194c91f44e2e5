package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/sgdraw/pkg/drawing"
	"github.com/matzehuels/sgdraw/pkg/errors"
)

// ============================================================================
// GEOMETRY PROJECTIONS
// ============================================================================

// point is a node position on the layout plane, before canvas mapping.
type point struct {
	x, y float64
}

// segment is a drawable edge piece in canvas coordinates. Wrapping
// geometries split one edge into two segments.
type segment struct {
	x1, y1, x2, y2 float64
}

// projection maps layout-plane coordinates onto the SVG canvas. The map is
// affine; the y scale is negative so that the mathematical y-axis points up
// while the SVG y-axis points down.
type projection struct {
	geometry string

	scaleX, scaleY float64
	offX, offY     float64

	// Frame rectangle for the bounded geometries; doubles as the clip
	// region for wrapped edge segments.
	frameX, frameY, frameW, frameH float64
	clip                           bool

	// Boundary circle of the Poincaré disk.
	diskCX, diskCY, diskR float64
}

// newProjection builds the canvas mapping for a geometry. Euclidean layouts
// are fitted to the point cloud; the bounded geometries have fixed frames
// independent of where the nodes ended up.
func newProjection(geometry string, pts []point, width, height, margin float64) (*projection, error) {
	p := &projection{geometry: geometry}
	switch geometry {
	case drawing.GeometryEuclidean:
		p.fitEuclidean(pts, width, height, margin)
	case drawing.GeometryHyperbolic:
		r := math.Min(width, height)/2 - margin
		p.scaleX, p.scaleY = r, -r
		p.offX, p.offY = width/2, height/2
		p.diskCX, p.diskCY, p.diskR = width/2, height/2, r
	case drawing.GeometrySpherical:
		p.frameX, p.frameY = margin, margin
		p.frameW, p.frameH = width-2*margin, height-2*margin
		p.scaleX = p.frameW / (2 * math.Pi)
		p.scaleY = -p.frameH / math.Pi
		p.offX = p.frameX + p.frameW/2
		p.offY = p.frameY + p.frameH/2
		p.clip = true
	case drawing.GeometryTorus:
		side := math.Min(width, height) - 2*margin
		p.frameX, p.frameY = (width-side)/2, (height-side)/2
		p.frameW, p.frameH = side, side
		p.scaleX, p.scaleY = side, -side
		p.offX = p.frameX
		p.offY = p.frameY + side
		p.clip = true
	default:
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "unknown layout geometry: %s", geometry)
	}
	return p, nil
}

// fitEuclidean centers the bounding box of the point cloud on the canvas,
// scaled uniformly so the longer span fills the canvas minus margins. A
// degenerate cloud (single node, collinear on an axis) gets a unit span so
// the transform stays finite.
func (p *projection) fitEuclidean(pts []point, width, height, margin float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range pts {
		minX = math.Min(minX, pt.x)
		maxX = math.Max(maxX, pt.x)
		minY = math.Min(minY, pt.y)
		maxY = math.Max(maxY, pt.y)
	}
	if len(pts) == 0 {
		minX, maxX, minY, maxY = 0, 0, 0, 0
	}

	spanX := math.Max(maxX-minX, 1e-9)
	spanY := math.Max(maxY-minY, 1e-9)
	scale := math.Min((width-2*margin)/spanX, (height-2*margin)/spanY)

	p.scaleX, p.scaleY = scale, -scale
	p.offX = width/2 - scale*(minX+maxX)/2
	p.offY = height/2 + scale*(minY+maxY)/2
}

func (p *projection) toCanvas(pt point) point {
	return point{
		x: pt.x*p.scaleX + p.offX,
		y: pt.y*p.scaleY + p.offY,
	}
}

func (p *projection) clipped() bool { return p.clip }

// renderFrame draws the geometry's boundary: the Poincaré disk circle or
// the rectangular frame of the periodic geometries. Euclidean layouts are
// frameless.
func (p *projection) renderFrame(buf *bytes.Buffer) {
	switch p.geometry {
	case drawing.GeometryHyperbolic:
		fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="#cccccc" stroke-width="1"/>`+"\n",
			p.diskCX, p.diskCY, p.diskR)
	case drawing.GeometrySpherical, drawing.GeometryTorus:
		fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#cccccc" stroke-width="1"/>`+"\n",
			p.frameX, p.frameY, p.frameW, p.frameH)
	}
}

// edgeSegments returns the canvas segments for one edge. On the torus the
// edge follows the minimum image, so an edge whose endpoints sit on
// opposite sides of the square is drawn as two pieces, each running off
// the frame toward the nearer copy of its far endpoint. Spherical edges
// split the same way across the date line.
func (p *projection) edgeSegments(a, b point) []segment {
	switch p.geometry {
	case drawing.GeometryTorus:
		dx := wrapDelta(b.x-a.x, 1)
		dy := wrapDelta(b.y-a.y, 1)
		return p.splitSegments(a, b, dx, dy)
	case drawing.GeometrySpherical:
		dx := wrapDelta(b.x-a.x, 2*math.Pi)
		return p.splitSegments(a, b, dx, b.y-a.y)
	default:
		ca, cb := p.toCanvas(a), p.toCanvas(b)
		return []segment{{ca.x, ca.y, cb.x, cb.y}}
	}
}

// splitSegments draws a toward its minimum-image displacement and, when
// that displacement does not land on b, a mirror piece into b.
func (p *projection) splitSegments(a, b point, dx, dy float64) []segment {
	ca := p.toCanvas(a)
	head := p.toCanvas(point{a.x + dx, a.y + dy})
	segs := []segment{{ca.x, ca.y, head.x, head.y}}

	if a.x+dx == b.x && a.y+dy == b.y {
		return segs
	}
	tail := p.toCanvas(point{b.x - dx, b.y - dy})
	cb := p.toCanvas(b)
	return append(segs, segment{tail.x, tail.y, cb.x, cb.y})
}

// wrapDelta reduces a coordinate difference to its minimum image on a
// periodic axis of the given period.
func wrapDelta(d, period float64) float64 {
	if d > period/2 {
		return d - period
	}
	if d < -period/2 {
		return d + period
	}
	return d
}
