package game

// Broadcast payloads are deep copies so the transport can serialize them
// after the room lock is released. All helpers require the room lock held.

func (r *Room) usersSnapshot() []Participant {
	users := make([]Participant, 0, len(r.Participants))
	for _, p := range r.Participants {
		users = append(users, *p)
	}
	return users
}

func (r *Room) answersSnapshot() map[string]map[string]string {
	answers := make(map[string]map[string]string, len(r.CurrentAnswers))
	for userID, byCategory := range r.CurrentAnswers {
		inner := make(map[string]string, len(byCategory))
		for category, value := range byCategory {
			inner[category] = value
		}
		answers[userID] = inner
	}
	return answers
}

func (r *Room) totalsSnapshot() map[string]int {
	totals := make(map[string]int, len(r.TotalScores))
	for userID, points := range r.TotalScores {
		totals[userID] = points
	}
	return totals
}

func (r *Room) breakdownSnapshot() Breakdown {
	breakdown := make(Breakdown, len(r.RoundBreakdown))
	for userID, byCategory := range r.RoundBreakdown {
		inner := make(map[string]BreakdownEntry, len(byCategory))
		for category, entry := range byCategory {
			inner[category] = entry
		}
		breakdown[userID] = inner
	}
	return breakdown
}

func (r *Room) assignmentsSnapshot() map[string][]string {
	assignments := make(map[string][]string, len(r.ScoringAssignments))
	for scorer, targets := range r.ScoringAssignments {
		assignments[scorer] = append([]string(nil), targets...)
	}
	return assignments
}

// stateSnapshot is the full room-state payload broadcast after every
// state-affecting event.
func (r *Room) stateSnapshot() map[string]any {
	return map[string]any{
		"code":               r.Code,
		"users":              r.usersSnapshot(),
		"settings":           r.Settings,
		"currentRound":       r.CurrentRound,
		"currentLetter":      r.CurrentLetter,
		"phase":              string(r.Phase),
		"currentAnswers":     r.answersSnapshot(),
		"totalScores":        r.totalsSnapshot(),
		"roundBreakdown":     r.breakdownSnapshot(),
		"scoringAssignments": r.assignmentsSnapshot(),
	}
}
