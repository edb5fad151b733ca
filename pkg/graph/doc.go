// Package graph defines the junction graph built from a stroke network.
// Junctions are deduplicated crossing points; links between them are
// undirected and always mutual.
package graph
