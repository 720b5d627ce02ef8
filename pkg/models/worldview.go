package models

import "encoding/json"

// WorldviewContent is the structured form of a project's main worldview.
// It is stored as a JSON text blob on the worldviews row.
type WorldviewContent struct {
	Logline string   `json:"logline"`
	Genre   string   `json:"genre"`
	Rules   []string `json:"rules"`
}

// DecodeWorldviewContent decodes the stored content text. Rows written before
// the structured format hold a free-form string; that legacy text becomes the
// logline with genre and rules left empty. Null or undecodable values produce
// an all-empty content, never an error.
func DecodeWorldviewContent(raw *string) WorldviewContent {
	content := WorldviewContent{Rules: []string{}}
	if raw == nil || *raw == "" {
		return content
	}

	var decoded WorldviewContent
	if err := json.Unmarshal([]byte(*raw), &decoded); err == nil {
		if decoded.Rules == nil {
			decoded.Rules = []string{}
		}
		return decoded
	}

	// Legacy plain-string worldview: could itself be a JSON string literal.
	var legacy string
	if err := json.Unmarshal([]byte(*raw), &legacy); err == nil {
		content.Logline = legacy
		return content
	}

	content.Logline = *raw
	return content
}

// Encode returns the storage form of the content.
func (c WorldviewContent) Encode() string {
	if c.Rules == nil {
		c.Rules = []string{}
	}
	data, _ := json.Marshal(c)
	return string(data)
}

// Worldview is the one-per-project main setting document.
type Worldview struct {
	ProjectID string  `json:"project_id"`
	Content   *string `json:"-"`
}

// WorldviewGroup is a named bucket of worldview (lore) cards.
type WorldviewGroup struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
}

// WorldviewCard is a single lore entry, densely ordered within its group.
type WorldviewCard struct {
	ID       string  `json:"id"`
	GroupID  string  `json:"group_id"`
	Title    string  `json:"title"`
	Content  *string `json:"content"`
	Ordering *int    `json:"ordering"`
}

// WorldviewCardUpdate carries partial-update fields for a worldview card.
type WorldviewCardUpdate struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u *WorldviewCardUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil
}
