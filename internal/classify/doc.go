// Package classify maps per-image analysis signals and filenames onto
// document-type tags from a closed taxonomy.
//
// The rule cascade is a fixed, ordered table of (matcher, tag) pairs
// evaluated once, first match wins. Earlier entries deliberately win on
// ambiguity; the order is part of the contract and is exercised by
// tests. All matching happens over normalized text (lowercase,
// diacritics stripped), with reference keyword lists normalized the
// same way.
package classify
