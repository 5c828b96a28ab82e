package language

// scriptRanges are checked in order; the first block present in the text wins.
var scriptRanges = []struct {
	code   string
	lo, hi rune
}{
	{Hindi, 0x0900, 0x097F},   // Devanagari
	{Telugu, 0x0C00, 0x0C7F},  // Telugu
	{Tamil, 0x0B80, 0x0BFF},   // Tamil
	{Bengali, 0x0980, 0x09FF}, // Bengali
	{Urdu, 0x0600, 0x06FF},    // Arabic
	{Odia, 0x0B00, 0x0B7F},    // Odia
}

// DetectScript guesses the language of text from the Unicode blocks it uses.
// It returns false when no recognised block is present (e.g. Latin text),
// which callers treat as "no override".
func DetectScript(text string) (Language, bool) {
	for _, sr := range scriptRanges {
		for _, r := range text {
			if r >= sr.lo && r <= sr.hi {
				return Lookup(sr.code)
			}
		}
	}
	return Language{}, false
}
