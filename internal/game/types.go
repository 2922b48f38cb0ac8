package game

import (
	"math/rand"
	"strings"
	"sync"
)

type Phase string

const (
	PhaseLobby          Phase = "lobby"
	PhasePlay           Phase = "play"
	PhaseAIGrading      Phase = "ai-grading"
	PhaseScoring        Phase = "scoring"
	PhaseRoundBreakdown Phase = "round-breakdown"
	PhaseRoundResults   Phase = "round-results"
	PhaseEnded          Phase = "ended"
)

type Participant struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsHost   bool   `json:"isHost"`
}

type Settings struct {
	Rounds     int      `json:"rounds"`
	Categories []string `json:"categories"`
	Context    string   `json:"context,omitempty"`
}

var defaultCategories = []string{"Name", "Place", "Animal", "Thing"}

// NormalizeSettings clamps rounds to [1,10], keeps at most four non-empty
// categories (default set when none survive) and trims context to 80 chars.
func NormalizeSettings(settings Settings) Settings {
	categories := make([]string, 0, 4)
	for _, category := range settings.Categories {
		if category == "" {
			continue
		}
		categories = append(categories, category)
		if len(categories) == 4 {
			break
		}
	}
	if len(categories) == 0 {
		categories = append(categories, defaultCategories...)
	}

	rounds := settings.Rounds
	if rounds < 1 {
		rounds = 1
	}
	if rounds > 10 {
		rounds = 10
	}

	context := strings.TrimSpace(settings.Context)
	if runes := []rune(context); len(runes) > 80 {
		context = string(runes[:80])
	}

	return Settings{Rounds: rounds, Categories: categories, Context: context}
}

// BreakdownEntry is one graded answer. Reason is one of unique, duplicate,
// invalid, empty, manual.
type BreakdownEntry struct {
	Answer string `json:"answer"`
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

// Breakdown maps participant -> category -> graded answer.
type Breakdown map[string]map[string]BreakdownEntry

// Room is one game session. The registry guards each room with its own mutex
// held for a handler's full duration, so no event observes a torn state.
type Room struct {
	mu     sync.Mutex
	closed bool

	Code               string
	Participants       []*Participant
	Settings           Settings
	CurrentRound       int
	CurrentLetter      string
	Phase              Phase
	CurrentAnswers     map[string]map[string]string
	TotalScores        map[string]int
	RoundBreakdown     Breakdown
	SubmittedIDs       map[string]bool
	ScoreSheets        map[string]map[string]map[string]int
	ScoringAssignments map[string][]string
}

func (r *Room) participant(id string) *Participant {
	for _, p := range r.Participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) host() *Participant {
	for _, p := range r.Participants {
		if p.IsHost {
			return p
		}
	}
	return nil
}

func (r *Room) resetRound() {
	r.CurrentAnswers = make(map[string]map[string]string)
	r.RoundBreakdown = make(Breakdown)
	r.SubmittedIDs = make(map[string]bool)
	r.ScoreSheets = make(map[string]map[string]map[string]int)
	r.ScoringAssignments = make(map[string][]string)
}

// letterPool leaves out the letters that make for unfair or ambiguous rounds.
const letterPool = "ABCDEFGHIKLMNOPRSTUVWY"

func drawRoundLetter() string {
	return string(letterPool[rand.Intn(len(letterPool))])
}
