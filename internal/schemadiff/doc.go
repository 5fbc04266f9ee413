// Package schemadiff computes structural diffs between two versions of a
// schema's name badges and text, and applies such a diff onto a third
// version.
//
// Labels and descriptions are diffed as maps keyed by language code. Alias
// groups are diffed per language and then by list position, so an insertion
// in the middle of a group shows up as a run of Change operations followed by
// an Add. Patching uses the same positions; a group whose length changed
// concurrently will usually conflict.
package schemadiff
