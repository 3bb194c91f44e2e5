// Package pkg provides the core libraries for sgdraw graph layout.
//
// # Overview
//
// Sgdraw computes graph layouts by stochastic gradient descent: node
// pairs pull toward their graph-theoretic distances under an annealing
// schedule, on flat and curved surfaces alike. The pkg directory is
// organized into four main areas:
//
//  1. Domain logic ([graph], [drawing], [shortestpath], [layout/sgd], [quality])
//  2. Serialization ([graphio], [render])
//  3. Infrastructure ([cache], [store], [metrics], [observability])
//  4. Orchestration ([pipeline], [api])
//
// # Architecture
//
// The typical data flow through sgdraw:
//
//	graph file (JSON / DOT)
//	         ↓
//	    [graphio] package (parse the node-link graph)
//	         ↓
//	    [shortestpath] / [layout/sgd] packages (target distances + pairs)
//	         ↓
//	    [drawing] package (positions on the chosen surface)
//	         ↓
//	    [render] package (SVG / DOT / PDF / PNG output)
//
// # Quick Start
//
// Compute a layout and write it next to the input:
//
//	import (
//	    "context"
//
//	    "github.com/matzehuels/sgdraw/pkg/graphio"
//	    "github.com/matzehuels/sgdraw/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Run(context.Background(), pipeline.Options{
//	    InputPath: "graph.json",
//	    Geometry:  "euclidean2d",
//	})
//	if err != nil {
//	    return err
//	}
//	err = graphio.WriteLayoutFile(res.Layout, "graph.layout.json")
//
// # Main Packages
//
// ## Domain Logic
//
// [graph] - Arena-backed undirected graph with stable node and edge
// indices, optional labels, lengths, and metadata.
//
// [drawing] - Position containers for the supported geometries:
// Euclidean (2D and n-dimensional), hyperbolic (Poincaré disk),
// spherical (longitude/latitude), and toroidal (unit square with
// wraparound). Each knows its own distance and gradient step.
//
// [shortestpath] - Dijkstra distance matrices: full all-pairs and
// sparse pivot-restricted variants feeding the pair generators.
//
// [layout/sgd] - The optimizer. Node-pair generation (full, sparse
// pivot-based, distance-adjusted, omega spectral-seeded), the gradient
// step, and the five annealing schedules.
//
// [layout/spectral] - Laplacian eigenvector seeding used by the omega
// strategy.
//
// [quality] - Layout quality measures: normalized stress and mean
// relative edge length error.
//
// [rng] - The deterministic splittable generator behind every random
// choice, so a seed fully reproduces a run.
//
// ## Serialization
//
// [graphio] - Node-link JSON and Graphviz DOT readers, the layout
// document format, and file helpers.
//
// [render] - Renders layout documents to SVG directly or through
// Graphviz neato, with PDF and PNG conversion.
//
// ## Infrastructure
//
// [cache] - Content-addressed result cache with file, Redis, and no-op
// backends plus the key derivation shared by pipeline stages.
//
// [store] - Layout job records for the API: in-memory and MongoDB
// implementations.
//
// [metrics] - Prometheus counters and histograms for the pipeline and
// HTTP surface.
//
// [observability] - Hook interfaces the pipeline reports through,
// keeping the domain packages free of metric imports.
//
// [errors] - Coded errors shared across the module.
//
// ## Orchestration
//
// [pipeline] - The parse → pairs → layout pipeline with per-stage
// caching, used by the CLI and the API alike.
//
// [api] - The asynchronous HTTP API: submit a graph, poll the job,
// fetch the layout document or rendered SVG.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/layout/sgd/...   # Specific package
//	go test -run Example           # Examples only
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/sgdraw/pkg/graph
// [drawing]: https://pkg.go.dev/github.com/matzehuels/sgdraw/pkg/drawing
// [shortestpath]: https://pkg.go.dev/github.com/matzehuels/sgdraw/pkg/shortestpath
// [layout/sgd]: https://pkg.go.dev/github.com/matzehuels/sgdraw/pkg/layout/sgd
// [layout/spectral]: https://pkg.go.dev/github.com/matzehuels/sgdraw/pkg/layout/spectral
// [quality]: https://pkg.go.dev/github.com/matzehuels/sgdraw/pkg/quality
// [rng]: https://pkg.go.dev/github.com/matzehuels/sgdraw/pkg/rng
// [graphio]: https://pkg.go.dev/github.com/matzehuels/sgdraw/pkg/graphio
// [render]: https://pkg.go.dev/github.com/matzehuels/sgdraw/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/sgdraw/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/sgdraw/pkg/store
// [metrics]: https://pkg.go.dev/github.com/matzehuels/sgdraw/pkg/metrics
// [observability]: https://pkg.go.dev/github.com/matzehuels/sgdraw/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/sgdraw/pkg/errors
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sgdraw/pkg/pipeline
// [api]: https://pkg.go.dev/github.com/matzehuels/sgdraw/pkg/api
package pkg
