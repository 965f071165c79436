package shell

import "strings"

// Tokenize splits line into words separated by runs of whitespace. There is
// no quoting, a blank line yields no words.
func Tokenize(line string) []string {
	return strings.Fields(line)
}
