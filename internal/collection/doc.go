// Package collection models the document collection file: emails, their
// attachments, tag sets, and run metadata.
//
// The whole collection is loaded into memory once, mutated by a single
// classification pass, and written back once. Store guards the file
// with an advisory lock so concurrent invocations cannot interleave
// writes.
package collection
