package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText breaks text into lines no wider than columns display cells.
// Newlines start a new paragraph; a word wider than a line is split.
func wrapText(text string, columns int) []string {
	if columns <= 0 {
		return strings.Split(text, "\n")
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		var line strings.Builder
		width := 0
		for _, word := range words {
			for _, part := range splitWord(word, columns) {
				w := runewidth.StringWidth(part)
				if width > 0 && width+1+w > columns {
					lines = append(lines, line.String())
					line.Reset()
					width = 0
				}
				if width > 0 {
					line.WriteByte(' ')
					width++
				}
				line.WriteString(part)
				width += w
			}
		}
		lines = append(lines, line.String())
	}
	return lines
}

func splitWord(word string, columns int) []string {
	if runewidth.StringWidth(word) <= columns {
		return []string{word}
	}

	var parts []string
	var part strings.Builder
	width := 0
	for _, r := range word {
		w := runewidth.RuneWidth(r)
		if width+w > columns && width > 0 {
			parts = append(parts, part.String())
			part.Reset()
			width = 0
		}
		part.WriteRune(r)
		width += w
	}
	if part.Len() > 0 {
		parts = append(parts, part.String())
	}
	return parts
}
