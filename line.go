package main

// trimCRLF strips any trailing \r and/or \n bytes, in any order, at the
// end of the line only.
func trimCRLF(s string) string {
	end := len(s)
	for end > 0 && (s[end-1] == '\r' || s[end-1] == '\n') {
		end--
	}
	return s[:end]
}

// foldASCII lowercases ASCII letters only, used for nick and channel index
// keys. Non-ASCII bytes pass through untouched.
func foldASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// isValidNick reports whether n is usable as a nickname: non-empty, and
// every byte is > 0x20, and not 0x7F, ',', or '*'. ASCII only; no length cap.
func isValidNick(n string) bool {
	if len(n) == 0 {
		return false
	}
	for i := 0; i < len(n); i++ {
		c := n[i]
		if c <= 0x20 || c == 0x7F || c == ',' || c == '*' {
			return false
		}
	}
	return true
}

// splitNonEmpty splits s on sep, omitting empty fragments.
func splitNonEmpty(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

// normalizeChannel prefixes a bare name with '#' if it lacks one.
func normalizeChannel(name string) string {
	if len(name) == 0 {
		return "#"
	}
	if name[0] == '#' {
		return name
	}
	return "#" + name
}
