// Package alphabet is the trained side of the recognizer.
//
// An Alphabet owns a directional code map, a set of activity regions with
// per-region biases, and the characters trained against them. A stroke is
// classified into a Character: one directional code per segment plus one
// activity measure per region. Recognition is a nearest-neighbour search
// over the stored characters.
//
// Distance between an unknown u and a stored character c:
//
//	sum_j  bias[j] * (u.Measures[j] - c.Measures[j])^2 / Scale^2
//	  + sum_i  Scale * dist(u.Codes[i], c.Codes[i])^2
//
// where dist is the circular distance between two codes. Candidates whose
// region term already exceeds the best total are not scored further. Ties
// keep the lower index.
//
// Removal swaps the last character into the freed slot, so indices are not
// stable across Remove.
//
// Alphabets are persisted in a headerless little-endian int32 format; see
// Encode.
//
// An Alphabet is not safe for concurrent mutation. Callers serialize
// access to a given instance.
package alphabet
