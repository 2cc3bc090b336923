// Package record provides the Record type: an insertion-ordered set of named
// fields produced by a factory.Constructor.
//
// A Record supports bulk updates and membership queries:
//   - PropagateArray: set fields from a list of [key, value] pairs
//   - PropagateObject: set fields from a map, struct or another Record
//   - HasKey / HasValue: membership checks over the current fields
//   - ToArray: export the fields as ordered pairs
//
// Records encode to JSON and YAML objects in insertion order.
//
// A Record is not safe for concurrent mutation.
package record
