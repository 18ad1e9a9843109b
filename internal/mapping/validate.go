package mapping

import (
	"fmt"

	"crud-generator/internal/diagnostic"
)

// Validation codes.
const (
	CodeMissingType      = "mapping_missing_type"
	CodeDuplicateMapping = "duplicate_mapping"
	CodeEmptyFieldPath   = "empty_field_path"
	CodeMissingReverse   = "missing_reverse_mapping"
)

// Validate checks the structure of a mapping file: every mapping names both
// types, no pair is registered twice and 121 entries are non-empty. A pair
// without its reverse direction is reported as a warning.
func Validate(mf *MappingFile) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if mf == nil {
		res.AddError(CodeMissingType, "mapping file is nil", "", "")
		return res
	}

	seen := make(map[[2]string]struct{}, len(mf.TypeMappings))

	for i := range mf.TypeMappings {
		tm := &mf.TypeMappings[i]
		name := tm.String()

		if tm.Source == "" || tm.Target == "" {
			res.AddError(CodeMissingType, fmt.Sprintf("mapping %d needs a source and a target", i), name, "")
			continue
		}

		key := [2]string{tm.Source, tm.Target}
		if _, ok := seen[key]; ok {
			res.AddError(CodeDuplicateMapping, "mapping is registered twice", name, "")
			continue
		}

		seen[key] = struct{}{}

		for _, src := range tm.SourceFields() {
			if src == "" || tm.OneToOne[src] == "" {
				res.AddError(CodeEmptyFieldPath,
					fmt.Sprintf("121 entry %q: %q has an empty side", src, tm.OneToOne[src]), name, src)
			}
		}

		for _, ig := range tm.Ignore {
			if ig == "" {
				res.AddError(CodeEmptyFieldPath, "ignore entry is empty", name, "")
			}
		}
	}

	for i := range mf.TypeMappings {
		tm := &mf.TypeMappings[i]
		if tm.Source == "" || tm.Target == "" {
			continue
		}

		if _, ok := seen[[2]string{tm.Target, tm.Source}]; !ok {
			res.AddWarning(CodeMissingReverse, "no mapping back from the target", tm.String(), "")
		}
	}

	return res
}
