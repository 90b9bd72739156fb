package zilien

import (
	"regexp"
	"strings"
)

// Reserved series header labels and structural column headers.
const (
	// biologicLabel marks a column block holding an embedded Biologic
	// dataset.
	biologicLabel = "EC-lab"
	// potentiostatLabel marks the potentiostat column block of version 1
	// files.
	potentiostatLabel = "pot"

	experimentNumberHeader = "experiment_number"
	techniqueNumberHeader  = "technique_number"
)

var (
	// bracketUnitRE matches column headers like "Pressure [mbar]".
	bracketUnitRE = regexp.MustCompile(`^(.+?) \[(.+?)\]$`)
	// slashUnitRE matches Biologic column headers like "Ewe/V" and
	// "P/W/mA".
	slashUnitRE = regexp.MustCompile(`^(.+)/(.+)$`)
	// massLabelRE matches MS channel labels like "C0M18".
	massLabelRE = regexp.MustCompile(`^C[0-9]+M([0-9]+)$`)
)

// toMass extracts the mass from an MS channel label, "18" from "C0M18".
// Returns "" when the label is not an MS channel.
func toMass(label string) string {
	match := massLabelRE.FindStringSubmatch(label)
	if match == nil {
		return ""
	}

	return match[1]
}

// isTimeColumn reports whether a column header is one of the two
// elapsed-time spellings: "Time [s]" in native blocks, "time/s" in
// embedded Biologic blocks.
func isTimeColumn(column string) bool {
	return column == "Time [s]" || column == "time/s"
}

// timeName forms the series name of a block's elapsed-time column from
// the block label and the lowercased column header, with readable
// replacements for the two reserved labels.
func timeName(label, column string) string {
	lower := strings.ToLower(column)

	switch label {
	case potentiostatLabel:
		return "Potential " + lower
	case biologicLabel:
		return "Biologic " + lower
	default:
		return label + " " + lower
	}
}

// formName derives a value column's series name, unit and optional
// standard alias name from its block label and column header.
//
// The unit comes from the bracket form ("Pressure [mbar]") or, failing
// that, the slash form ("Ewe/V"). Labels ending in "setpoint" or "value"
// name the series after the label plus unit: "MFC1 setpoint" with column
// "Flow [ml/min]" forms "MFC1 setpoint [ml/min]". MS channel labels name
// the series after the mass: "C1M4" with column "M4-He [A]" forms
// "M4 [A]" with standard alias name "M4". Any other column keeps its
// header verbatim.
func formName(label, column string) (name, unit, stdName string) {
	if match := bracketUnitRE.FindStringSubmatch(column); match != nil {
		unit = match[2]
	} else if match := slashUnitRE.FindStringSubmatch(column); match != nil {
		unit = match[2]
	}

	switch {
	case strings.HasSuffix(label, "setpoint") || strings.HasSuffix(label, "value"):
		name = label + " [" + unit + "]"
	case toMass(label) != "":
		mass := toMass(label)
		name = "M" + mass + " [" + unit + "]"
		stdName = "M" + mass
	default:
		name = column
	}

	return name, unit, stdName
}
