package assistant

import (
	"time"

	brandentity "github.com/pierrel/linkpulse/internal/domain/brand/entity"
	watchentity "github.com/pierrel/linkpulse/internal/domain/watch/entity"
)

type GeneratePostInput struct {
	Topic        string
	Length       string
	PostType     string
	PostCategory string
	EmojiStyle   string
	Registre     string
	Langue       string
	IncludeCTA   bool
	BrandProfile *brandentity.Profile
}

type GeneratePostOutput struct {
	Content                string   `json:"content"`
	Variants               []string `json:"variants"`
	Suggestions            []string `json:"suggestions"`
	ReadabilityScore       int      `json:"readabilityScore"`
	EditorialJustification string   `json:"editorialJustification"`
	Hashtags               []string `json:"hashtags"`
	Keywords               []string `json:"keywords"`
}

type GenerateCalendarInput struct {
	StartDate    time.Time
	WeeksCount   int
	WatchItems   []watchentity.Item
	BrandProfile *brandentity.Profile
}

type CalendarSlot struct {
	Date      string `json:"date"`
	Theme     string `json:"theme"`
	Type      string `json:"type"`
	Objective string `json:"objective"`
}

type GenerateCalendarOutput struct {
	Items []CalendarSlot `json:"items"`
}

type DailyInspirationInput struct {
	BrandProfile *brandentity.Profile
}

type InspirationEntry struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type DailyInspirationOutput struct {
	Themes   []InspirationEntry `json:"themes"`
	Accounts []InspirationEntry `json:"accounts"`
	News     []InspirationEntry `json:"news"`
}

type AssistPostInput struct {
	Content      string
	Action       string
	BrandProfile *brandentity.Profile
}

type AssistPostOutput struct {
	Content string `json:"content"`
}
