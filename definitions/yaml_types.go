package definitions

// CurrentVersion is the only supported definitions file version.
const CurrentVersion = "1"

// File is the root of a definitions document.
type File struct {
	Version string      `yaml:"version"`
	Structs []StructDef `yaml:"structs"`
}

// StructDef names one field specification.
type StructDef struct {
	Name string `yaml:"name"`
	// Fields holds the specification string. It is untyped so that null or
	// non-string values are reported by Validate instead of failing the parse.
	Fields      any    `yaml:"fields"`
	Description string `yaml:"description,omitempty"`
}
