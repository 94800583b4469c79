package interp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/leafscript/leaf/value"
)

// formatValue renders v the way spec.md §4.5 describes for Print and
// Println: the printable form of each runtime kind.
func formatValue(v value.Value) string {
	switch v.Kind {
	case value.Null:
		return "null"
	case value.Number:
		return formatNumber(v.Num)
	case value.Bool:
		if v.BoolV {
			return "true"
		}
		return "false"
	case value.String:
		return v.Str
	case value.Func:
		return "leaf_function { }"
	case value.StructType:
		return fmt.Sprintf("leaf_struct %s { }", v.Struct.Name)
	case value.Instance:
		return formatInstance(v.Instance)
	default:
		return "unknown"
	}
}

// formatNumber renders a float64 as the shortest decimal that round-
// trips, up to 20 significant digits, per spec.md §4.5. strconv's
// shortest-round-trip mode never needs more than ~17 significant
// digits for a float64, so the 20-digit ceiling is never actually
// approached; the 'g' fallback exists purely so extreme magnitudes
// print in scientific notation instead of a page of zeros.
func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "nan"
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	}
	if abs := math.Abs(n); n != 0 && (abs >= 1e20 || abs < 1e-10) {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// formatInstance renders `TypeName {\n    field : value\n... }`,
// walking fields in the struct's textual declaration order.
func formatInstance(inst *value.InstanceVal) string {
	var b strings.Builder
	b.WriteString(inst.Struct.Name)
	b.WriteString(" {\n")
	for _, name := range inst.Struct.Fields {
		fmt.Fprintf(&b, "    %s : %s\n", name, formatValue(inst.Fields[name]))
	}
	b.WriteString("}")
	return b.String()
}
