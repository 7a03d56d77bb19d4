// Package markup renders the inline markup dice/eval writes into roll
// traces — "**bold**" for critical values, "~~struck~~" for superseded or
// dropped values, "__underlined__" layered on top for a dropped current
// head — either as ANSI escapes for a terminal or stripped down to plain
// text for anything else (a log file, a chat message, a pipe).
package markup

import "strings"

// Render converts s's inline markup. When color is true the output uses
// ANSI SGR escapes (bold, underline, strikethrough); when false the
// delimiters are simply removed, leaving plain text.
func Render(s string, color bool) string {
	var out strings.Builder
	var bold, strike, underline int // each toggles between 0 and 1 per delimiter

	emitSGR := func() {
		if !color {
			return
		}
		var codes []string
		codes = append(codes, "0")
		if bold > 0 {
			codes = append(codes, "1")
		}
		if underline > 0 {
			codes = append(codes, "4")
		}
		if strike > 0 {
			codes = append(codes, "9")
		}
		out.WriteString("\x1b[" + strings.Join(codes, ";") + "m")
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if i+1 < len(runes) {
			pair := string(runes[i : i+2])
			switch pair {
			case "**":
				if bold > 0 {
					bold--
				} else {
					bold++
				}
				emitSGR()
				i++
				continue
			case "~~":
				if strike > 0 {
					strike--
				} else {
					strike++
				}
				emitSGR()
				i++
				continue
			case "__":
				if underline > 0 {
					underline--
				} else {
					underline++
				}
				emitSGR()
				i++
				continue
			}
		}
		out.WriteRune(runes[i])
	}

	if color {
		out.WriteString("\x1b[0m")
	}
	return out.String()
}
