// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"math"
	"sort"
	"strconv"

	"github.com/kzhou57/stagevote/models"
)

// Policy turns a live vote set into a single ranking number. Both
// implementations are pure; the caller picks one via configuration.
type Policy interface {
	Score(live []models.Vote, weights map[string]float64) float64
}

// WeightedGroups partitions the live set by voter weight, averages each
// group, and combines group means weighted by the group's weight value:
//
//	score = sum(groupMean_i * weight_i) / sum(weight_i)
//
// The denominator sums each distinct weight once, not per voter, so a
// single heavily-weighted voter cannot outvote a group of equally-weighted
// voters whose average disagrees.
type WeightedGroups struct{}

func (WeightedGroups) Score(live []models.Vote, weights map[string]float64) float64 {
	if len(live) == 0 {
		return 0
	}

	sums := make(map[float64]float64)
	counts := make(map[float64]int)
	for _, v := range live {
		w := voterWeight(weights, v.UserID)
		sums[w] += float64(v.Points)
		counts[w]++
	}

	var weightedSum, totalWeight float64
	for w, sum := range sums {
		groupMean := sum / float64(counts[w])
		weightedSum += groupMean * w
		totalWeight += w
	}

	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight
}

// TrimmedMean drops a fixed count of the lowest and highest live points and
// averages the remainder, judged-scoring style.
type TrimmedMean struct {
	IgnoreMin int
	IgnoreMax int
}

func (p TrimmedMean) Score(live []models.Vote, _ map[string]float64) float64 {
	points := make([]int, len(live))
	for i, v := range live {
		points[i] = v.Points
	}
	sort.Ints(points)

	lo := p.IgnoreMin
	hi := len(points) - p.IgnoreMax
	if lo < 0 || hi <= lo {
		return 0
	}
	points = points[lo:hi]

	sum := 0
	for _, p := range points {
		sum += p
	}
	return float64(sum) / float64(len(points))
}

// PolicyFor maps a configured policy name to its implementation. Unknown
// names fall back to weighted grouping.
func PolicyFor(name string, ignoreMin, ignoreMax int) Policy {
	if name == models.PolicyTrimmed {
		return TrimmedMean{IgnoreMin: ignoreMin, IgnoreMax: ignoreMax}
	}
	return WeightedGroups{}
}

// LiveSet reduces the raw vote log for one work to at most one vote per
// user: the one with the greatest timestamp. votes must arrive in append
// order; equal timestamps keep the later entry, so a re-vote within the
// same second still supersedes. Output order follows first appearance of
// each user.
func LiveSet(votes []models.Vote) []models.Vote {
	index := make(map[string]int, len(votes))
	live := make([]models.Vote, 0, len(votes))
	for _, v := range votes {
		i, seen := index[v.UserID]
		if !seen {
			index[v.UserID] = len(live)
			live = append(live, v)
			continue
		}
		if v.Timestamp >= live[i].Timestamp {
			live[i] = v
		}
	}
	return live
}

// Compute derives the full aggregate for one work's raw vote log.
//
// The average comes from the configured policy, but variance and standard
// deviation are always computed over the live set's raw points around the
// raw mean: the policy answers "what is the score", the dispersion numbers
// answer "how much did voters disagree", and mixing bases would make the
// latter depend on the former.
func Compute(votes []models.Vote, weights map[string]float64, p Policy) models.AggregateResult {
	live := LiveSet(votes)
	if len(live) == 0 {
		return models.AggregateResult{Detail: []models.Vote{}}
	}

	rawSum := 0
	for _, v := range live {
		rawSum += v.Points
	}
	rawMean := float64(rawSum) / float64(len(live))

	variance := 0.0
	for _, v := range live {
		d := float64(v.Points) - rawMean
		variance += d * d
	}
	variance /= float64(len(live))

	return models.AggregateResult{
		Average:  p.Score(live, weights),
		Variance: variance,
		Std:      math.Sqrt(variance),
		Count:    len(live),
		Detail:   live,
	}
}

// ParseWeight interprets a stored weight value, defaulting to 1 on
// missing or non-numeric input.
func ParseWeight(s string) float64 {
	if s == "" {
		return 1
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
		return 1
	}
	return w
}

func voterWeight(weights map[string]float64, userID string) float64 {
	w, ok := weights[userID]
	if !ok {
		return 1
	}
	return w
}
