package services

import (
	"sort"

	"airhr/resume-analyzer/internal/models"
)

// Ranking operates on persisted candidate rows. A nil score means the reply
// carried no score; such candidates never pass a threshold and never enter
// the best set, but they stay in the batch output.

// SortByScore orders candidates by score descending. Candidates without a
// score sort last; input order is preserved inside every tie group.
func SortByScore(candidates []models.Candidate) []models.Candidate {
	sorted := make([]models.Candidate, len(candidates))
	copy(sorted, candidates)

	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := sorted[i].Score, sorted[j].Score
		if si == nil {
			return false
		}
		if sj == nil {
			return true
		}
		return *si > *sj
	})

	return sorted
}

// FilterByThreshold returns the candidates whose score is present and at
// least threshold.
func FilterByThreshold(candidates []models.Candidate, threshold int) []models.Candidate {
	var passed []models.Candidate
	for _, c := range candidates {
		if c.Score != nil && *c.Score >= threshold {
			passed = append(passed, c)
		}
	}
	return passed
}

// BestSet returns the candidates sharing the maximum present score. Ties are
// kept, not broken: several candidates may legitimately be "best".
func BestSet(candidates []models.Candidate) []models.Candidate {
	max := 0
	found := false
	for _, c := range candidates {
		if c.Score == nil {
			continue
		}
		if !found || *c.Score > max {
			max = *c.Score
			found = true
		}
	}

	if !found {
		return nil
	}

	var best []models.Candidate
	for _, c := range candidates {
		if c.Score != nil && *c.Score == max {
			best = append(best, c)
		}
	}
	return best
}
