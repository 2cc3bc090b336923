// Package diagnostic collects structured errors and warnings found while
// validating struct definitions.
package diagnostic
