package jsparser

import "strings"

// skipSpanAt returns the index just past a line comment, block comment,
// string literal, or template literal starting at i, or i unchanged if
// none of those start there. Template literal substitutions (${...}) are
// scanned recursively so that nested braces, strings, and comments inside
// them don't confuse the caller's bracket-depth counter.
//
// This is a deliberately lightweight scanner: it does not disambiguate
// regular expression literals from division operators, the one place
// where ECMAScript genuinely requires full grammar context to tokenize
// correctly. Source containing a regex literal at the top level may be
// mis-split into more Raw items than a real parser would produce, which
// is harmless (see scanStatement) for anything except a regex literal
// that itself contains an unbalanced bracket or quote character, an
// accepted limitation given the parser here exists only to recover
// import/export structure, not to fully tokenize arbitrary ECMAScript.
func skipSpanAt(src string, i int) int {
	if i+1 < len(src) && src[i] == '/' && src[i+1] == '/' {
		j := i + 2
		for j < len(src) && src[j] != '\n' {
			j++
		}
		return j
	}
	if i+1 < len(src) && src[i] == '/' && src[i+1] == '*' {
		j := i + 2
		for j+1 < len(src) && !(src[j] == '*' && src[j+1] == '/') {
			j++
		}
		if j+1 < len(src) {
			j += 2
		} else {
			j = len(src)
		}
		return j
	}
	if src[i] == '\'' || src[i] == '"' {
		return scanQuoted(src, i, src[i])
	}
	if src[i] == '`' {
		return scanTemplate(src, i)
	}
	return i
}

func scanQuoted(src string, i int, quote byte) int {
	j := i + 1
	for j < len(src) {
		if src[j] == '\\' {
			j += 2
			continue
		}
		if src[j] == quote {
			return j + 1
		}
		j++
	}
	return j
}

func scanTemplate(src string, i int) int {
	j := i + 1
	for j < len(src) {
		if src[j] == '\\' {
			j += 2
			continue
		}
		if src[j] == '`' {
			return j + 1
		}
		if src[j] == '$' && j+1 < len(src) && src[j+1] == '{' {
			depth := 1
			j += 2
			for j < len(src) && depth > 0 {
				if k := skipSpanAt(src, j); k != j {
					j = k
					continue
				}
				switch src[j] {
				case '{', '(', '[':
					depth++
				case '}', ')', ']':
					depth--
				}
				j++
			}
			continue
		}
		j++
	}
	return j
}

// skipTrivia advances past whitespace and comments.
func skipTrivia(src string, i int) int {
	for i < len(src) {
		c := src[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			i++
			continue
		}
		if i+1 < len(src) && c == '/' && (src[i+1] == '/' || src[i+1] == '*') {
			i = skipSpanAt(src, i)
			continue
		}
		break
	}
	return i
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// scanIdentifier reads an identifier starting at i (assumed valid).
func scanIdentifier(src string, i int) (string, int) {
	j := i
	for j < len(src) && isIdentPart(src[j]) {
		j++
	}
	return src[i:j], j
}

// keywordAt reports whether src has the keyword kw starting at i, not
// immediately followed by another identifier character (so "importX"
// does not match the keyword "import").
func keywordAt(src string, i int, kw string) bool {
	if !strings.HasPrefix(src[i:], kw) {
		return false
	}
	end := i + len(kw)
	return end >= len(src) || !isIdentPart(src[end])
}

// scanBalancedFrom scans from i (which must be an opening bracket) to the
// position just past its matching close, treating '(', '{', '[' as a
// single collective depth counter. This is valid for well-formed
// ECMAScript: opens and closes of all three bracket kinds are always
// properly nested with respect to each other.
func scanBalancedFrom(src string, i int) int {
	depth := 0
	for i < len(src) {
		if k := skipSpanAt(src, i); k != i {
			i = k
			continue
		}
		switch src[i] {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
		i++
	}
	return i
}

// scanStatement scans one top-level construct starting at i, returning
// its trimmed source text and the position just past it. It stops at the
// first top-level (bracket-depth-zero) ';', or immediately after a
// top-level '}' that closed a block opened within this same call (so
// function/class/if/for/while/try/switch bodies terminate the statement
// without requiring a trailing semicolon), or at end of file.
//
// Compound statements (if/else, try/catch/finally, do/while) may be
// split into more than one returned chunk than a real parser would
// produce. This is harmless for Raw items: the chunks are concatenated
// back in original order with no processing in between, so the emitted
// text is identical either way.
//
// Known limitation: an expression statement that relies on ASI instead
// of a trailing ';' (e.g. "export default foo\n") scans past the
// newline and swallows whatever follows, since only a top-level '}',
// ';', or EOF stops the scan.
func scanStatement(src string, start int) (string, int) {
	i := start
	depth := 0
	for i < len(src) {
		if k := skipSpanAt(src, i); k != i {
			i = k
			continue
		}
		switch src[i] {
		case '(', '{', '[':
			depth++
			i++
		case ')', ']':
			depth--
			i++
		case '}':
			depth--
			i++
			if depth == 0 {
				return strings.TrimSpace(src[start:i]), i
			}
		case ';':
			i++
			if depth == 0 {
				return strings.TrimSpace(src[start:i]), i
			}
		default:
			i++
		}
	}
	return strings.TrimSpace(src[start:i]), i
}
