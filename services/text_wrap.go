package services

import "strings"

// WrapText greedily breaks text into lines no wider than maxWidth when
// rendered in font f. Words are separated by single spaces in the output and
// an explicit newline always starts a new line. A word wider than maxWidth is
// never split; it is placed alone on its own line and allowed to overflow.
// Empty or whitespace-only input produces no lines.
func WrapText(m Measurer, f Font, text string, maxWidth float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}

		current := words[0]
		for _, w := range words[1:] {
			candidate := current + " " + w
			if m.StringWidth(candidate, f) > maxWidth {
				lines = append(lines, current)
				current = w
				continue
			}
			current = candidate
		}
		lines = append(lines, current)
	}
	return lines
}
