// Package datum provides a thin, immutable wrapper around a byte slice used
// as a key or value throughout chainrocks.
//
// A Datum exists so that call sites can move between the "text-like" and
// "raw bytes" views of a key/value without repeated ad-hoc conversions.
package datum
