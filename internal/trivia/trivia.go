// Package trivia defines the core domain types for the Rehletna trivia
// journey: content categories, the stage sequence they unlock in, the
// content item variants, and the scoring rules.
package trivia

import (
	"strconv"
	"strings"
)

// Category identifies one mini-game and its content bank.
type Category string

const (
	Riddles Category = "riddles"
	Verses  Category = "verses"
	Links   Category = "links"
	Quotes  Category = "quotes"
	Math    Category = "math"
	Photos  Category = "photos"
	Wheel   Category = "wheel"
)

// Categories in stage order. A category's index here is its stage number.
var Categories = []Category{Riddles, Verses, Links, Quotes, Math, Photos, Wheel}

// WheelStage is exempt from the stage gate: the wheel is always reachable.
const WheelStage = 6

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Stage returns the stage number of c, or -1 for an unknown category.
func (c Category) Stage() int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}
	return -1
}

// Editable reports whether the admin editor manages a content bank for c.
// The wheel's slice list is fixed at compile time.
func (c Category) Editable() bool {
	return c.Valid() && c != Wheel
}

// Scoring rules per category. Penalties and costs are negative deltas.
const (
	RiddleReward  = 5
	RiddlePenalty = -2
	HintCost      = -3

	VerseReward  = 3
	VersePenalty = -1

	ChoiceReward  = 1
	ChoicePenalty = -1

	MathReward  = 5
	MathPenalty = -2
)

// VerseLevels is the number of verse difficulty levels.
const VerseLevels = 3

// QuestionSeconds is the countdown applied to math and verse questions.
// A question answered after its deadline is revealed without scoring.
const QuestionSeconds = 60

type RiddleKind string

const (
	RiddleText  RiddleKind = "text"
	RiddleEmoji RiddleKind = "emoji"
)

type VerseKind string

const (
	VerseMissingWord VerseKind = "missing_word"
	VerseArrange     VerseKind = "arrange"
	VerseReference   VerseKind = "reference"
)

// Riddle is a free-text puzzle. Accepted holds alternative answers that
// also count as correct after normalization.
type Riddle struct {
	ID       int        `json:"id"`
	Kind     RiddleKind `json:"kind"`
	Question string     `json:"question"`
	Answer   string     `json:"answer"`
	Accepted []string   `json:"accepted,omitempty"`
	Hint     string     `json:"hint"`
}

// Check compares a guess against the answer and accepted alternatives
// using loose Arabic normalization.
func (r Riddle) Check(guess string) bool {
	got := NormalizeArabic(guess)
	if got == "" {
		return false
	}
	if got == NormalizeArabic(r.Answer) {
		return true
	}
	for _, alt := range r.Accepted {
		if got == NormalizeArabic(alt) {
			return true
		}
	}
	return false
}

// VerseChallenge is one verse question inside a level. For missing_word and
// reference kinds the learner picks from Options; for arrange the learner
// orders Words and the space-joined result must equal Correct exactly.
type VerseChallenge struct {
	ID      int       `json:"id"`
	Level   int       `json:"level"`
	Kind    VerseKind `json:"kind"`
	Text    string    `json:"text,omitempty"`
	Words   []string  `json:"words,omitempty"`
	Options []string  `json:"options,omitempty"`
	Correct string    `json:"correct"`
}

// Check reports whether the submitted answer matches exactly. Arrange
// submissions arrive pre-joined with single spaces.
func (v VerseChallenge) Check(answer string) bool {
	return answer == v.Correct
}

// LinkChallenge asks for the common link between a set of items.
type LinkChallenge struct {
	ID      int      `json:"id"`
	Items   []string `json:"items"`
	Answer  string   `json:"answer"`
	Options []string `json:"options"`
}

func (l LinkChallenge) Check(option string) bool {
	return option == l.Answer
}

// QuoteChallenge asks who said a quote.
type QuoteChallenge struct {
	ID      int      `json:"id"`
	Quote   string   `json:"quote"`
	Answer  string   `json:"answer"`
	Options []string `json:"options"`
}

func (q QuoteChallenge) Check(option string) bool {
	return option == q.Answer
}

// MathQuestion expects an exact integer answer within the countdown.
type MathQuestion struct {
	ID          int    `json:"id"`
	Question    string `json:"question"`
	Answer      int    `json:"answer"`
	Explanation string `json:"explanation"`
}

// Check parses the free-text input as an integer and compares it.
func (q MathQuestion) Check(input string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	return err == nil && n == q.Answer
}

// PhotoTask is completed by a device-local action; there is no correctness
// check and its points are awarded at most once.
type PhotoTask struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

// Item is implemented by every editable content type.
type Item interface {
	ItemID() int
}

func (r Riddle) ItemID() int         { return r.ID }
func (v VerseChallenge) ItemID() int { return v.ID }
func (l LinkChallenge) ItemID() int  { return l.ID }
func (q QuoteChallenge) ItemID() int { return q.ID }
func (q MathQuestion) ItemID() int   { return q.ID }
func (p PhotoTask) ItemID() int      { return p.ID }

// NextID returns the id for a new item: highest existing id plus one, or 1
// for an empty list.
func NextID[T Item](items []T) int {
	max := 0
	for _, it := range items {
		if it.ItemID() > max {
			max = it.ItemID()
		}
	}
	return max + 1
}

// SplitList splits a comma-separated editor input into trimmed tokens,
// discarding empty ones.
func SplitList(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
