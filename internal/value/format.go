package value

// Format renders v per the logging formatting rule in spec §4.4. It
// returns v.String() unchanged for every kind of value, Vec/Map/Set
// included; forge.log output reaches it through Join.
func Format(v Value) string {
	return v.String()
}

// Join formats a list of values separated by single spaces, matching
// forge.log's info/warn/error contract (spec §4.4).
func Join(vs []Value) string {
	out := make([]byte, 0, 64)
	for i, v := range vs {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, []byte(Format(v))...)
	}
	return string(out)
}
