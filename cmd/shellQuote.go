package cmd

import "strings"

// shellQuote minimally quotes an argument for POSIX shells. Words made only of
// shell-safe characters pass through verbatim; anything else is single-quoted
// with the standard `'\''` escape for embedded single quotes.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, isShellUnsafe) == -1 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// shellJoin quotes each word and joins them with single spaces.
func shellJoin(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = shellQuote(w)
	}
	return strings.Join(quoted, " ")
}

// isShellUnsafe reports whether r needs quoting. Safe: alnum and - _ . / @ : , + = %
func isShellUnsafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	switch r {
	case '-', '_', '.', '/', '@', ':', ',', '+', '=', '%':
		return false
	}
	return true
}
