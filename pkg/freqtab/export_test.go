package freqtab

var ParseLine = parseLine

// SetMaxLine changes the longest line accepted and returns the old value.
func SetMaxLine(n int) int {
	old := maxLine
	maxLine = n
	return old
}
