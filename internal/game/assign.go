package game

import "math/rand"

const derangementAttempts = 25

func shuffled(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// randomDerangement permutes ids so that no id stays at its original index.
// Random retries are cheap at party-game sizes; after 25 misses the rotation
// ids[1..]+ids[0] is used, which is always a valid derangement.
func randomDerangement(ids []string) []string {
	if len(ids) <= 1 {
		return nil
	}
	if len(ids) == 2 {
		return []string{ids[1], ids[0]}
	}

	for attempt := 0; attempt < derangementAttempts; attempt++ {
		candidate := shuffled(ids)
		fixed := false
		for i, id := range candidate {
			if id == ids[i] {
				fixed = true
				break
			}
		}
		if !fixed {
			return candidate
		}
	}

	rotated := make([]string, 0, len(ids))
	rotated = append(rotated, ids[1:]...)
	rotated = append(rotated, ids[0])
	return rotated
}

// generateScoringAssignments builds the peer-scoring graph for the manual
// fallback: every participant scores exactly one other participant, and on an
// odd roster the host picks up one extra target so nobody goes unscored.
func generateScoringAssignments(participants []*Participant) map[string][]string {
	ids := make([]string, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}

	assignments := make(map[string][]string, len(ids))
	if len(ids) <= 1 {
		for _, id := range ids {
			assignments[id] = []string{}
		}
		return assignments
	}

	scorers := shuffled(ids)
	targets := randomDerangement(scorers)
	for i, scorer := range scorers {
		assignments[scorer] = []string{targets[i]}
	}

	if len(ids)%2 == 1 {
		hostID := ids[0]
		for _, p := range participants {
			if p.IsHost {
				hostID = p.ID
				break
			}
		}
		existing := assignments[hostID]
		options := make([]string, 0, len(ids))
		for _, id := range ids {
			if id == hostID {
				continue
			}
			taken := false
			for _, target := range existing {
				if target == id {
					taken = true
					break
				}
			}
			if !taken {
				options = append(options, id)
			}
		}
		if len(options) > 0 {
			extra := options[rand.Intn(len(options))]
			assignments[hostID] = append(existing, extra)
		}
	}

	return assignments
}
