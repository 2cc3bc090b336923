// Package naming converts raw field specification segments into field names.
//
// Key functions:
//   - FieldName: trims a segment and camel-cases multi-word names
//   - Words: splits a segment on whitespace
//   - LowerCamel: joins words into a lowerCamelCase identifier
package naming
