package measurement

// Aliases maps a logical series name to an ordered list of concrete series
// names. Per-key order is insertion order and is significant: lookups walk
// the list front to back, so earlier entries shadow later ones.
//
// Duplicate concrete names are legal. Two amplifier channels of the same
// mass produce the same concrete name, and both land in the list.
type Aliases map[string][]string

// NewAliases creates an empty alias table.
func NewAliases() Aliases {
	return make(Aliases)
}

// Add appends a concrete name to the list for the logical name std.
func (a Aliases) Add(std, concrete string) {
	a[std] = append(a[std], concrete)
}

// Merge appends every list in defaults after the entries already present
// for the same key. Reader-derived entries therefore stay ahead of global
// defaults.
func (a Aliases) Merge(defaults Aliases) {
	for std, names := range defaults {
		a[std] = append(a[std], names...)
	}
}

// Clone returns a deep copy of the table.
func (a Aliases) Clone() Aliases {
	clone := make(Aliases, len(a))
	for std, names := range a {
		clone[std] = append([]string(nil), names...)
	}

	return clone
}
