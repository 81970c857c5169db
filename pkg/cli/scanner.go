package cli

import "strings"

// Scanner inspects the raw CommandLine directly. It is the best-effort
// fallback used while structured parsing has not completed yet; its
// answers must agree with the frozen option table once both are
// computable.
type Scanner struct {
	cmdline CommandLine
}

// NewScanner returns a scanner over the given command line.
func NewScanner(cmdline CommandLine) Scanner {
	return Scanner{cmdline: cmdline}
}

// FlagRequested reports whether any of the given spellings appears as a
// raw token (exactly, or in --flag=value form).
func (s Scanner) FlagRequested(spellings ...string) bool {
	for _, spelling := range spellings {
		if spelling == "" {
			continue
		}
		if s.cmdline.hasToken(spelling) {
			return true
		}
	}
	return false
}

// ValueOf returns the value of a string-valued flag from its
// --flag=value spelling. Only the inline form is visible pre-parse; a
// detached value token cannot be attributed safely without the parser.
func (s Scanner) ValueOf(spelling string) (string, bool) {
	prefix := spelling + "="
	for _, tok := range s.cmdline.tokens {
		if strings.HasPrefix(tok, prefix) {
			return tok[len(prefix):], true
		}
	}
	return "", false
}

// ValuesOf returns every inline value of a list-valued flag, in
// command-line order.
func (s Scanner) ValuesOf(spelling string) []string {
	prefix := spelling + "="
	var out []string
	for _, tok := range s.cmdline.tokens {
		if strings.HasPrefix(tok, prefix) {
			out = append(out, tok[len(prefix):])
		}
	}
	return out
}

// Positionals returns every raw token that does not start with a flag
// prefix, in order.
func (s Scanner) Positionals() []string {
	var out []string
	for _, tok := range s.cmdline.tokens {
		if !strings.HasPrefix(tok, "-") {
			out = append(out, tok)
		}
	}
	return out
}
