package models

// Card is a character sheet. The four list fields are stored as JSON text and
// decoded on read (see DecodeStringList for the legacy comma-string fallback).
type Card struct {
	ID                string   `json:"id"`
	GroupID           string   `json:"group_id"`
	Name              string   `json:"name"`
	Description       *string  `json:"description"`
	Goal              []string `json:"goal"`
	Personality       []string `json:"personality"`
	Abilities         []string `json:"abilities"`
	Quote             []string `json:"quote"`
	IntroductionStory *string  `json:"introduction_story"`
	Ordering          *int     `json:"ordering"`
}

// CardUpdate carries partial-update fields for a card. Nil means "leave the
// stored value alone"; a present pointer overwrites, including with empty.
type CardUpdate struct {
	Name              *string   `json:"name"`
	Description       *string   `json:"description"`
	Goal              *[]string `json:"goal"`
	Personality       *[]string `json:"personality"`
	Abilities         *[]string `json:"abilities"`
	Quote             *[]string `json:"quote"`
	IntroductionStory *string   `json:"introduction_story"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u *CardUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Goal == nil &&
		u.Personality == nil && u.Abilities == nil && u.Quote == nil &&
		u.IntroductionStory == nil
}
