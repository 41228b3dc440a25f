// Package matcher holds the text normalization and fuzzy matching rules used
// to compare supply-list items with catalog products and search queries.
//
// Everything here is pure: no I/O, no clock, no shared state. Both the
// availability reconciler and the cross-list search build a Query once and
// then test many candidates against it.
//
// # Normalization
//
// Normalize lowercases, decomposes (NFD), drops combining marks and collapses
// whitespace, so "Cuaderno  Universitário" and "cuaderno universitario" compare equal.
//
// # Rules
//
//   - MatchesISBN: digit-only containment, only when the query has at least 10 digits.
//   - MatchesName: bidirectional containment of the normalized strings, or for
//     multi-token queries at least min(tokens, 2) tokens present in the candidate.
//   - MatchesFields: full query contained in any field, or for multi-token queries
//     every token present in at least one field.
package matcher
