// Package driver runs the tmplfmt pipeline over a set of inputs.
//
// Each input goes through normalize, rewrite and format. Inputs are loaded
// sequentially into one source.FileSet and then processed in parallel; the
// results come back in input order.
package driver
