package oracle

import "errors"

// extractJSONObject returns the first balanced {...} substring of
// text. The oracle wraps its JSON in free-form prose more often than
// not, so the parser cannot assume the whole body is JSON. String
// literals and escape sequences are honored while counting braces.
func extractJSONObject(text string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}

	if start < 0 {
		return "", errors.New("no JSON object found in oracle output")
	}
	return "", errors.New("unbalanced JSON object in oracle output")
}
