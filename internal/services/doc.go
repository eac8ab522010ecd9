// Package services defines the error taxonomy shared by every curator
// operation.
//
// Sentinel markers distinguish missing inputs (ErrNotFound), mid-operation
// read/write failures (ErrIO), predictive-model failures (ErrClassification),
// and malformed configuration (ErrConfiguration). Wrap attaches component and
// operation context while preserving the marker for errors.Is dispatch, so
// batch loops can decide between skipping an item and aborting a run without
// parsing error strings.
package services
