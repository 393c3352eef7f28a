package contentmodel

import (
	"fmt"
	"sort"
	"strings"
)

// Emit renders the validator module: a single mapping from each entry's
// declared name to a runtime-validator expression. Entries are sorted by
// name for reproducible diffs, matching the ordering discipline the rest
// of the emitter follows.
func Emit(entries []Entry) string {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var b strings.Builder
	b.WriteString("import { stringValidator, numberValidator, booleanValidator, enumValidator, recordValidator } from \"./validators\";\n\n")
	b.WriteString("export const contentModels = {\n")
	for _, e := range sorted {
		b.WriteString(fmt.Sprintf("  %q: %s,\n", e.Name, renderValidator(e.JSON)))
	}
	b.WriteString("};\n")
	return b.String()
}

func renderValidator(shape FieldShape) string {
	switch shape.Type {
	case "string", "datetime":
		if shape.Validation != nil && len(shape.Validation.Enum) > 0 {
			return enumValidatorExpr(shape.Validation.Enum)
		}
		return "stringValidator()"
	case "number":
		return "numberValidator()"
	case "boolean":
		return "booleanValidator()"
	case "object":
		return recordValidatorExpr(shape.Fields)
	default:
		return "stringValidator()"
	}
}

func enumValidatorExpr(options []EnumOption) string {
	values := make([]string, len(options))
	for i, o := range options {
		values[i] = fmt.Sprintf("%q", o.Value)
	}
	return fmt.Sprintf("enumValidator([%s])", strings.Join(values, ", "))
}

func recordValidatorExpr(fields []SubField) string {
	sorted := make([]SubField, len(fields))
	copy(sorted, fields)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	parts := make([]string, len(sorted))
	for i, f := range sorted {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, renderValidator(f.FieldShape))
	}
	return fmt.Sprintf("recordValidator({ %s })", strings.Join(parts, ", "))
}
