// Package spectral embeds graphs by eigenvectors of the weighted
// Laplacian.
//
// The embedding is a resistance-distance MDS: coordinate k of node i is
// v_k[i] / sqrt(lambda_k), where (lambda_k, v_k) are the d smallest
// non-zero eigenpairs of the graph Laplacian. Nodes that are close in
// resistance distance land close together, which makes the embedding a
// good sampling space for the Omega pair generator in package sgd:
// drawing candidate partners by embedded separation finds structurally
// relevant pairs far more often than uniform sampling does.
//
// Eigenpairs come from inverse power iteration on the shifted matrix
// L + cI, with a Jacobi-preconditioned conjugate-gradient solve per step
// and Gram-Schmidt deflation against the eigenvectors already found. The
// constant vector 1/sqrt(n) seeds the deflation basis, so the zero
// eigenvalue is never revisited. Everything runs on the edge list in
// O(|E|) per matrix operation; no dense matrix is ever formed.
//
// # Usage
//
//	emb, err := spectral.Embedding(g, shortestpath.EdgeLengths(g), spectral.DefaultOptions(), r)
//	if err != nil {
//	    return err
//	}
//	s, err := sgd.NewOmega(g, length, emb, sgd.DefaultOmegaOptions(), r)
//
// The graph must be connected: a second zero eigenvalue (one per extra
// component) has no finite embedding coordinate, and Embedding reports it
// as an error instead of producing one.
package spectral
