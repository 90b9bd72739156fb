package measurement

// Metadata holds the typed key/value pairs parsed from a file preamble.
// Leaves are string, int, float64 or bool; keys of settings attached to a
// specific series block carry the block label as a "{label}_" prefix.
type Metadata map[string]any

// Str returns the string value under key.
func (m Metadata) Str(key string) (string, bool) {
	v, ok := m[key].(string)

	return v, ok
}

// Int returns the int value under key.
func (m Metadata) Int(key string) (int, bool) {
	v, ok := m[key].(int)

	return v, ok
}

// Float returns the float64 value under key.
func (m Metadata) Float(key string) (float64, bool) {
	v, ok := m[key].(float64)

	return v, ok
}

// Bool returns the bool value under key.
func (m Metadata) Bool(key string) (bool, bool) {
	v, ok := m[key].(bool)

	return v, ok
}
