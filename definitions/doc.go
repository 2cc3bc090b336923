// Package definitions loads named field specifications from YAML and keeps
// the resulting constructors in a Registry.
//
// A definitions file looks like:
//
//	version: "1"
//	structs:
//	  - name: person
//	    fields: "id, name, age"
//	  - name: address
//	    fields: street, city, postal code
package definitions
