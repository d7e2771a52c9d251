package mood

import "sort"

// Share is the portion of entries tagged with one mood.
type Share struct {
	Mood     Mood
	Count    int
	Fraction float64
}

// Percent returns the share as a whole percentage, truncated toward zero.
func (s Share) Percent() int {
	return int(s.Fraction * 100)
}

// Distribution holds one Share per mood present in the input, ordered by
// ascending rank.
type Distribution []Share

// Fractions returns the distribution as a map keyed by mood.
func (d Distribution) Fractions() map[Mood]float64 {
	out := make(map[Mood]float64, len(d))
	for _, s := range d {
		out[s.Mood] = s.Fraction
	}
	return out
}

// Total is the number of entries the distribution was computed over.
func (d Distribution) Total() int {
	total := 0
	for _, s := range d {
		total += s.Count
	}
	return total
}

// Arc is one segment of the mood ring, in degrees.
type Arc struct {
	Mood  Mood
	Start float64
	Sweep float64
}

// ringStart is where the first segment begins, measured clockwise from 3 o'clock.
const ringStart = 90.0

// Arcs lays the shares out around a ring in rank order.
func (d Distribution) Arcs() []Arc {
	arcs := make([]Arc, 0, len(d))
	angle := ringStart
	for _, s := range d {
		sweep := s.Fraction * 360
		arcs = append(arcs, Arc{Mood: s.Mood, Start: angle, Sweep: sweep})
		angle += sweep
	}
	return arcs
}

func count(moods []Mood) map[Mood]int {
	counts := make(map[Mood]int)
	for _, m := range moods {
		counts[m]++
	}
	return counts
}

// ComputeDistribution returns the relative frequency of each mood. An empty
// input yields an empty distribution.
func ComputeDistribution(moods []Mood) Distribution {
	if len(moods) == 0 {
		return Distribution{}
	}
	counts := count(moods)
	total := float64(len(moods))
	dist := make(Distribution, 0, len(counts))
	for m, n := range counts {
		dist = append(dist, Share{Mood: m, Count: n, Fraction: float64(n) / total})
	}
	sort.Slice(dist, func(i, j int) bool {
		return dist[i].Mood.Rank() < dist[j].Mood.Rank()
	})
	return dist
}

// MostFrequent returns the mood with the highest count. Ties go to the most
// positive mood. An empty input yields Okay.
func MostFrequent(moods []Mood) Mood {
	if len(moods) == 0 {
		return Okay
	}
	best, bestCount := Mood(0), 0
	for m, n := range count(moods) {
		if n > bestCount || (n == bestCount && m.Rank() > best.Rank()) {
			best, bestCount = m, n
		}
	}
	return best
}
