// Package export renders stored letter content into downloadable PDF and
// DOCX documents.
package export

import (
	"html"
	"regexp"
	"strings"
)

var (
	// Block-level closings and breaks become newlines so paragraph
	// boundaries survive tag stripping.
	blockBreakRe = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</div>|</h[1-6]>|</li>`)
	openBlockRe  = regexp.MustCompile(`(?i)<p[^>]*>|<div[^>]*>|<h[1-6][^>]*>|<li[^>]*>`)
	anyTagRe     = regexp.MustCompile(`<[^>]*>`)
	multiBlankRe = regexp.MustCompile(`\n{3,}`)
)

// HTMLToPlainText strips markup from stored letter content, preserving
// paragraph breaks. Plain-text input passes through unchanged.
func HTMLToPlainText(content string) string {
	s := blockBreakRe.ReplaceAllString(content, "\n")
	s = openBlockRe.ReplaceAllString(s, "\n")
	s = anyTagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = multiBlankRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
