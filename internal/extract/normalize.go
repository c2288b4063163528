package extract

import (
	"regexp"
	"strings"
)

var (
	blankRunsRe  = regexp.MustCompile(`\n{3,}`)
	pageNumberRe = regexp.MustCompile(`(?m)^\s*\d{1,3}\s*$`)
	hspaceRunsRe = regexp.MustCompile(`[ \t]{2,}`)
)

// Normalize cleans raw extracted text before analysis: line endings are
// unified, bare page-number lines removed, and whitespace runs collapsed.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = blankRunsRe.ReplaceAllString(text, "\n\n")
	text = pageNumberRe.ReplaceAllString(text, "")
	text = hspaceRunsRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
