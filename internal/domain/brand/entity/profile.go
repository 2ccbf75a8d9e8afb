package entity

import (
	"time"
)

// Tone represents the brand voice used to condition generation
type Tone string

const (
	ToneExpert       Tone = "expert"
	ToneFriendly     Tone = "friendly"
	ToneStorytelling Tone = "storytelling"
	TonePunchline    Tone = "punchline"
	ToneMixed        Tone = "mixed"
)

// PublishingFrequency represents the desired posting cadence
type PublishingFrequency string

const (
	FrequencyDaily        PublishingFrequency = "daily"
	FrequencyThreePerWeek PublishingFrequency = "3-per-week"
	FrequencyTwoPerWeek   PublishingFrequency = "2-per-week"
	FrequencyWeekly       PublishingFrequency = "weekly"
)

// PostsPerWeek returns how many slots a week of this cadence holds
func (f PublishingFrequency) PostsPerWeek() int {
	switch f {
	case FrequencyDaily:
		return 7
	case FrequencyThreePerWeek:
		return 3
	case FrequencyTwoPerWeek:
		return 2
	case FrequencyWeekly:
		return 1
	default:
		return 3
	}
}

// EditorialCharter is the long-form positioning document attached to a
// profile. Stored as a single jsonb column.
type EditorialCharter struct {
	Audience     string   `json:"audience"`
	Positioning  string   `json:"positioning"`
	Tone         string   `json:"tone"`
	DoList       []string `json:"do_list"`
	DontList     []string `json:"dont_list"`
	KPIs         []string `json:"kpis"`
	WritingStyle string   `json:"writing_style"`
}

// Profile is the per-user brand configuration conditioning all AI
// generation prompts. One profile per user; never hard-deleted.
type Profile struct {
	ID                  string              `json:"id"`
	UserID              string              `json:"user_id"`
	CompanyName         string              `json:"company_name"`
	Sector              string              `json:"sector"`
	Targets             []string            `json:"targets"`
	BusinessObjectives  []string            `json:"business_objectives"`
	Tone                Tone                `json:"tone"`
	Values              []string            `json:"values"`
	ForbiddenWords      []string            `json:"forbidden_words"`
	PublishingFrequency PublishingFrequency `json:"publishing_frequency"`
	Charter             *EditorialCharter   `json:"editorial_charter,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// Validate checks the profile fields
func (p *Profile) Validate() error {
	if p.UserID == "" {
		return ErrEmptyUserID
	}
	if p.CompanyName == "" {
		return ErrEmptyCompanyName
	}
	if !isValidTone(p.Tone) {
		return ErrInvalidTone
	}
	if !isValidFrequency(p.PublishingFrequency) {
		return ErrInvalidFrequency
	}
	return nil
}

func isValidTone(t Tone) bool {
	switch t {
	case ToneExpert, ToneFriendly, ToneStorytelling, TonePunchline, ToneMixed:
		return true
	default:
		return false
	}
}

func isValidFrequency(f PublishingFrequency) bool {
	switch f {
	case FrequencyDaily, FrequencyThreePerWeek, FrequencyTwoPerWeek, FrequencyWeekly:
		return true
	default:
		return false
	}
}
