package cgen

// Quote returns s as a C string literal. Quotes, backslashes and control
// bytes are escaped; everything else, UTF-8 included, is copied byte for
// byte so the literal compares equal to the raw request path.
func Quote(s string) string {
	b := make([]byte, 0, len(s)+2)
	b = append(b, '"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '"' || c == '\\':
			b = append(b, '\\', c)
		case c < 0x20 || c == 0x7f:
			// Fixed-width octal, so a following digit is not swallowed.
			b = append(b, '\\', '0'+c>>6, '0'+c>>3&7, '0'+c&7)
		default:
			b = append(b, c)
		}
	}
	return string(append(b, '"'))
}
