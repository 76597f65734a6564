// Package io reads and writes conflict graphs and partitions as JSON.
//
// # Graph Format
//
//	{
//	  "vertices": [{"id": "a"}, {"id": "b"}, {"id": "c"}],
//	  "edges": [
//	    {"from": "a", "to": "b", "weight": 2.5},
//	    {"from": "b", "to": "c", "stitch": true}
//	  ]
//	}
//
// Vertices are numbered in the order listed and ids double as labels. An
// edge without a weight is a conflict edge of weight 1; "stitch": true
// without a weight is a stitch edge of weight -1. Only the sign of a weight
// is significant.
//
// # Partition Format
//
//	{
//	  "vertices": 4,
//	  "groups": [{"root": "a", "members": ["a", "d"]}, ...],
//	  "parents": ["a", "b", "c", "a"]
//	}
//
// parents[i] is the vertex that vertex i was merged into, or its own label
// for roots. Partitions are always read against the graph they describe.
//
// # Errors
//
// Decoding problems carry INVALID_FORMAT, structural problems INVALID_GRAPH
// and missing files FILE_NOT_FOUND (see package errors).
package io
