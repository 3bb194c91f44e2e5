package pipeline

import (
	"github.com/matzehuels/sgdraw/pkg/errors"
	"github.com/matzehuels/sgdraw/pkg/graph"
	"github.com/matzehuels/sgdraw/pkg/graphio"
)

// parseGraph reads the input graph according to the options. A reader
// needs an explicit format; a path without one is dispatched on its
// extension.
func parseGraph(opts *Options) (*graph.Graph, error) {
	if opts.Reader != nil {
		switch opts.Format {
		case FormatJSON:
			return graphio.ReadJSON(opts.Reader)
		case FormatDOT:
			return graphio.ReadDOT(opts.Reader)
		default:
			return nil, errors.New(errors.ErrCodeInvalidParameter,
				"format is required when reading from a stream")
		}
	}

	switch opts.Format {
	case FormatJSON:
		return graphio.ImportJSON(opts.InputPath)
	case FormatDOT:
		return graphio.ImportDOT(opts.InputPath)
	default:
		return graphio.ImportFile(opts.InputPath)
	}
}

// checkGraph rejects graphs the layout stages cannot place.
func checkGraph(g *graph.Graph) error {
	if g.NodeCount() == 0 {
		return errors.New(errors.ErrCodeInvalidGraph, "graph has no nodes")
	}
	return nil
}
