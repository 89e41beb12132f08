package draw

// locationCorrections maps exact malformed location strings as published
// by the source to their corrected form. Corrections are applied before
// the string is split into city and state; they never mutate previously
// exported data.
//
// Draw 1637: the source repeats the host state, "IMBITUVA, PR, PR".
var locationCorrections = map[string]string{
	"IMBITUVA, PR, PR": "IMBITUVA, PR",
}

// correctLocation returns the corrected form of a location string, or the
// string unchanged when no correction is registered.
func correctLocation(s string) string {
	if fixed, ok := locationCorrections[s]; ok {
		return fixed
	}
	return s
}
