package cli

import "strings"

// CommandLine is an immutable capture of the raw argument vector,
// taken once at process start.
type CommandLine struct {
	tokens []string
}

// Capture copies argv into an immutable CommandLine. The program name
// must already be stripped; only arguments are captured.
func Capture(argv []string) CommandLine {
	tokens := make([]string, len(argv))
	copy(tokens, argv)
	return CommandLine{tokens: tokens}
}

// Tokens returns a copy of the raw tokens in order.
func (c CommandLine) Tokens() []string {
	out := make([]string, len(c.tokens))
	copy(out, c.tokens)
	return out
}

// Len returns the number of raw tokens.
func (c CommandLine) Len() int {
	return len(c.tokens)
}

// hasToken reports whether a token equals spelling, or is an
// "=value" form of it.
func (c CommandLine) hasToken(spelling string) bool {
	for _, tok := range c.tokens {
		if tok == spelling || strings.HasPrefix(tok, spelling+"=") {
			return true
		}
	}
	return false
}
