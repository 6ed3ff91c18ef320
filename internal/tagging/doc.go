// Package tagging orchestrates classification over a document
// collection.
//
// The Coordinator drives one pass: for every image attachment it
// short-circuits on photo-named files, extracts analysis signals
// (through a per-run cache keyed by resolved path), applies the photo
// heuristic and the rule cascade, and writes exactly one outcome onto
// the attachment. Every per-attachment failure degrades to the
// manual-review sentinel; only collection-level errors surface.
//
// The Reconciler re-runs the same pipeline over attachments a previous
// run routed to manual review, merging any new concrete tag into the
// existing tag set without disturbing unrelated tags.
package tagging
