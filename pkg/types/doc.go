// Package types defines the cell model, the persisted view, the view store
// interface, configuration, and the standard error values shared by the
// tabview packages.
//
// A CellValue is a closed variant over Integer, Real, Text, Blob and Null.
// Consumers switch over Kind and handle every case; Format is the single
// display rendering used by every renderer.
package types
