// Package textutil provides text normalization for OCR output and
// reference keyword lists.
//
// Classification matches normalized text against normalized keyword
// tables, so accented and unaccented spellings ("graduação" vs
// "graduacao") are treated identically. Normalization lowercases the
// input and strips combining diacritical marks via Unicode NFD
// decomposition.
package textutil
