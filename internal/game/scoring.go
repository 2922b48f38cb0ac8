package game

import (
	"math"
	"strings"

	"github.com/NewBeeD/NamePlaceAnimalThing/internal/grading"
	"github.com/NewBeeD/NamePlaceAnimalThing/internal/words"
)

// roundPointsCap is 10 points across at most 4 categories.
const roundPointsCap = 40

// normalizeMark buckets a human-submitted mark onto the 0/5/10 scale.
func normalizeMark(value float64) int {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0
	}
	if value >= 10 {
		return 10
	}
	if value >= 5 {
		return 5
	}
	return 0
}

// collectGradingEntries gathers every answer worth sending to the external
// grader: non-empty and passing the round-letter/charset pre-filter.
func collectGradingEntries(room *Room) []grading.Entry {
	var entries []grading.Entry
	for _, p := range room.Participants {
		for _, category := range room.Settings.Categories {
			answer := strings.TrimSpace(room.CurrentAnswers[p.ID][category])
			if answer == "" || !words.IsPlayable(answer, room.CurrentLetter) {
				continue
			}
			entries = append(entries, grading.Entry{
				ID:       p.ID + "::" + category,
				Category: category,
				Answer:   answer,
			})
		}
	}
	return entries
}

func verdictAccepts(verdicts map[string]grading.Verdict, entryID string) bool {
	verdict, ok := verdicts[entryID]
	if !ok {
		// No verdict means the grader was not asked or did not answer for
		// this entry; default to valid.
		return true
	}
	// Low-confidence rejections are overridden to accept.
	return verdict.Valid || verdict.Confidence < 0.8
}

// evaluateRoundWithVerdicts produces the AI-path breakdown: valid answers are
// grouped case-insensitively per category, duplicates score 5, unique answers
// 10, invalid 0, empty 0. Round totals are capped.
func evaluateRoundWithVerdicts(room *Room, verdicts map[string]grading.Verdict) (Breakdown, map[string]int) {
	frequencies := make(map[string]map[string]int, len(room.Settings.Categories))
	for _, category := range room.Settings.Categories {
		frequencies[category] = make(map[string]int)
	}

	for _, p := range room.Participants {
		for _, category := range room.Settings.Categories {
			answer := strings.TrimSpace(room.CurrentAnswers[p.ID][category])
			if answer == "" || !words.IsPlayable(answer, room.CurrentLetter) {
				continue
			}
			if !verdictAccepts(verdicts, p.ID+"::"+category) {
				continue
			}
			frequencies[category][strings.ToLower(answer)]++
		}
	}

	breakdown := make(Breakdown, len(room.Participants))
	totals := make(map[string]int, len(room.Participants))

	for _, p := range room.Participants {
		breakdown[p.ID] = make(map[string]BreakdownEntry, len(room.Settings.Categories))
		total := 0

		for _, category := range room.Settings.Categories {
			answer := strings.TrimSpace(room.CurrentAnswers[p.ID][category])
			points := 0
			reason := "empty"

			if answer != "" {
				valid := words.IsPlayable(answer, room.CurrentLetter) &&
					verdictAccepts(verdicts, p.ID+"::"+category)
				if !valid {
					reason = "invalid"
				} else if frequencies[category][strings.ToLower(answer)] > 1 {
					points = 5
					reason = "duplicate"
				} else {
					points = 10
					reason = "unique"
				}
			}

			breakdown[p.ID][category] = BreakdownEntry{Answer: answer, Points: points, Reason: reason}
			total += points
		}

		totals[p.ID] = min(roundPointsCap, total)
	}

	return breakdown, totals
}

// finalizeManualScores averages the marks each target received from the
// scorers assigned to them, rounds, and renormalizes through the 0/5/10
// buckets. Targets nobody scored get 0.
func finalizeManualScores(room *Room) (Breakdown, map[string]int) {
	var scorers []string
	for _, p := range room.Participants {
		if len(room.ScoringAssignments[p.ID]) > 0 {
			scorers = append(scorers, p.ID)
		}
	}

	breakdown := make(Breakdown, len(room.Participants))
	totals := make(map[string]int, len(room.Participants))

	for _, target := range room.Participants {
		breakdown[target.ID] = make(map[string]BreakdownEntry, len(room.Settings.Categories))
		total := 0

		for _, category := range room.Settings.Categories {
			sum, count := 0, 0
			for _, scorer := range scorers {
				assigned := false
				for _, id := range room.ScoringAssignments[scorer] {
					if id == target.ID {
						assigned = true
						break
					}
				}
				if !assigned {
					continue
				}
				sum += room.ScoreSheets[scorer][target.ID][category]
				count++
			}

			points := 0
			if count > 0 {
				average := math.Round(float64(sum) / float64(count))
				points = normalizeMark(average)
			}

			breakdown[target.ID][category] = BreakdownEntry{
				Answer: strings.TrimSpace(room.CurrentAnswers[target.ID][category]),
				Points: points,
				Reason: "manual",
			}
			total += points
		}

		totals[target.ID] = min(roundPointsCap, total)
	}

	return breakdown, totals
}
