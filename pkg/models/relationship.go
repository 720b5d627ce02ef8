package models

// Relationship links two character cards within one project. PhaseOrder is the
// currently active step of the relationship's timeline; it is a user-facing
// counter and is not required to be contiguous across phases.
type Relationship struct {
	ID                string  `json:"id"`
	ProjectID         string  `json:"project_id"`
	SourceCharacterID string  `json:"source_character_id"`
	TargetCharacterID string  `json:"target_character_id"`
	Type              string  `json:"type"`
	Description       *string `json:"description"`
	PhaseOrder        int     `json:"phase_order"`

	Phases []RelationshipPhase `json:"phases,omitempty"`
}

// RelationshipPhase is one step in a relationship's evolution, carrying how
// each side addresses and speaks to the other at that point in the story.
type RelationshipPhase struct {
	ID                    string  `json:"id"`
	RelationshipID        string  `json:"relationship_id"`
	PhaseOrder            int     `json:"phase_order"`
	Type                  string  `json:"type"`
	Description           *string `json:"description"`
	TriggerDescription    *string `json:"trigger_description"`
	SourceToTargetAddress *string `json:"source_to_target_address"`
	SourceToTargetTone    *string `json:"source_to_target_tone"`
	TargetToSourceAddress *string `json:"target_to_source_address"`
	TargetToSourceTone    *string `json:"target_to_source_tone"`
}

// RelationshipPhaseUpdate carries partial-update fields for a phase.
type RelationshipPhaseUpdate struct {
	PhaseOrder            *int    `json:"phase_order"`
	Type                  *string `json:"type"`
	Description           *string `json:"description"`
	TriggerDescription    *string `json:"trigger_description"`
	SourceToTargetAddress *string `json:"source_to_target_address"`
	SourceToTargetTone    *string `json:"source_to_target_tone"`
	TargetToSourceAddress *string `json:"target_to_source_address"`
	TargetToSourceTone    *string `json:"target_to_source_tone"`
}
