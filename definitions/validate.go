package definitions

import (
	"fmt"
	"strings"

	"struct-factory/factory"
	"struct-factory/internal/common"
	"struct-factory/internal/diagnostic"
)

// Validate checks every definition in f and reports all problems at once.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("file_is_nil", "definitions file is nil", "", 0)
		return res
	}

	if f.Version != CurrentVersion {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported version %q", f.Version), "", 0)
	}

	if common.IsEmpty(f.Structs) {
		res.AddWarning("no_structs", "no structs defined", "", 0)
	}

	seen := map[string]struct{}{}

	for i := range f.Structs {
		def := &f.Structs[i]
		name := strings.TrimSpace(def.Name)

		if name == "" {
			res.AddError("missing_name", "struct has no name", "", i+1)
		} else if _, ok := seen[name]; ok {
			res.AddError("duplicate_struct", fmt.Sprintf("duplicate struct %q", name), name, i+1)
		} else {
			seen[name] = struct{}{}
		}

		if _, err := factory.FromValue(def.Fields); err != nil {
			res.AddError("invalid_specification", err.Error(), name, i+1)
		}
	}

	return res
}
