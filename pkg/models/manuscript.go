package models

import (
	"strings"
	"unicode/utf8"
)

// ManuscriptBlock is one section of the written manuscript, densely ordered
// within its project. The derived counters are recomputed whenever content
// changes and lazily backfilled on read for rows written before they existed.
type ManuscriptBlock struct {
	ID        string  `json:"id"`
	ProjectID string  `json:"project_id"`
	Title     string  `json:"title"`
	Content   *string `json:"content"`
	Ordering  *int    `json:"ordering"`
	CharCount *int    `json:"char_count"`
	WordCount *int    `json:"word_count"`
}

// ManuscriptBlockUpdate carries partial-update fields for a block.
type ManuscriptBlockUpdate struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// CountContent computes the derived counters for a content string. Characters
// are counted as runes so multibyte text is counted the way writers expect.
func CountContent(content string) (chars, words int) {
	return utf8.RuneCountInString(content), len(strings.Fields(content))
}

// EnsureCounts backfills nil counters from the block's content. It returns
// true when a counter was filled in, so callers can persist the backfill.
func (b *ManuscriptBlock) EnsureCounts() bool {
	if b.CharCount != nil && b.WordCount != nil {
		return false
	}
	content := ""
	if b.Content != nil {
		content = *b.Content
	}
	chars, words := CountContent(content)
	if b.CharCount == nil {
		b.CharCount = &chars
	}
	if b.WordCount == nil {
		b.WordCount = &words
	}
	return true
}
