// Package sorting implements the stable multi-key merge sort used to reorder playlists.
//
// A [Comparator] is a closed selector over four orderings:
//
//	Year        (0) year ascending
//	StreamsAsc  (1) streams ascending
//	StreamsDesc (2) streams descending
//	Title       (3) title ascending, byte-wise
//
// Raw selector input is decoded with [Decode] or [Parse]; anything unrecognised becomes [Title].
//
// [Sort] is a top-down recursive merge sort. Merges copy both halves into temporary buffers
// reserved through a [shared.Allocator] and take the right element only when the left one is
// strictly higher, so equal keys keep their input order.
package sorting
