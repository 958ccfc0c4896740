package linebreak

import (
	"testing"

	"github.com/tdewolff/test"
)

// fixedHyphenator always reports a single hyphenation opportunity at a
// fixed rune offset within the word, regardless of its content.
type fixedHyphenator struct{ at int }

func (h fixedHyphenator) Hyphenate(out []HyphenationType, word []rune, locale string) {
	for i := range out {
		out[i] = DontBreak
	}
	if h.at > 0 && h.at < len(out) {
		out[h.at] = BreakAndInsertHyphen
	}
}

// TestHyphenationScenario covers scenario S4: a word-internal hyphenation
// opportunity lets the optimal decider break a single unbreakable word. The
// line width (90, wider than spec.md's illustrative 60) keeps the second
// fragment ("henation", 8 runes) from itself overflowing a single line,
// which would otherwise trigger desperate mid-word breaks on top of the
// hyphenation break and obscure the behavior under test.
func TestHyphenationScenario(t *testing.T) {
	lb := NewLineBreaker()
	lb.SetLineWidthOracle(FixedLineWidth(90))
	lb.SetLocales("en", []Hyphenator{fixedHyphenator{at: 3}})
	lb.SetStrategy(HighQuality)
	lb.SetHyphenationFrequency(HyphenationFull)

	text := []rune("hyphenation")
	lb.Resize(len(text))
	copy(lb.Text(), text)
	for i := range lb.CharWidths() {
		lb.CharWidths()[i] = 10
	}

	lb.SetText()
	lb.AddStyleRun(&StyleParams{Size: 10, ScaleX: 1, HyphenWidth: 10}, 0, len(text), false)
	L := lb.ComputeBreaks()

	test.T(t, L, 2)
	test.T(t, lb.Breaks(), []int{3, 11})
	test.T(t, Hyphen(lb.Flags()[0])&insertHyphenThisLine != 0, true, "line 0 ends with an inserted hyphen")
	test.T(t, Hyphen(lb.Flags()[1])&insertHyphenNextLine != 0, true, "line 1 starts after the hyphenated break")
}

// TestGreedyMatchesOptimalWhenUnambiguous covers invariant 5: when no
// candidate offers any improvement over the next, greedy and optimal agree.
func TestGreedyMatchesOptimalWhenUnambiguous(t *testing.T) {
	build := func(strategy BreakStrategy) ([]int, []float64) {
		lb := NewLineBreaker()
		lb.SetLineWidthOracle(FixedLineWidth(70))
		lb.SetLocales("en", nil)
		lb.SetStrategy(strategy)

		text := []rune("aaa bbb ccc")
		lb.Resize(len(text))
		copy(lb.Text(), text)
		for i := range lb.CharWidths() {
			lb.CharWidths()[i] = 10
		}
		lb.SetText()
		lb.AddStyleRun(&StyleParams{Size: 10, ScaleX: 1}, 0, len(text), false)
		lb.ComputeBreaks()
		return append([]int(nil), lb.Breaks()...), append([]float64(nil), lb.Widths()...)
	}

	greedyBreaks, greedyWidths := build(Greedy)
	optimalBreaks, optimalWidths := build(HighQuality)

	test.T(t, greedyBreaks, optimalBreaks)
	test.T(t, greedyWidths, optimalWidths)
}

// TestOptimalMinimizesTotalScore covers invariant 7 on a small input: the
// optimal decider's chosen break list must have total score no worse than
// every other admissible break list, checked by brute-force enumeration
// over all subsets of candidate offsets that include the paragraph end. The
// brute force scores each candidate path with the same per-line cost used
// by computeBreaksOptimal itself (delta^2, the overfull/last-line branches,
// per-candidate penalty and per-line linePenalty), not a simplified proxy,
// since invariant 7 is a claim about that specific objective.
func TestOptimalMinimizesTotalScore(t *testing.T) {
	lb := NewLineBreaker()
	lb.SetLineWidthOracle(FixedLineWidth(35))
	lb.SetLocales("en", nil)
	lb.SetStrategy(HighQuality)

	text := []rune("aa bb cc dd")
	lb.Resize(len(text))
	copy(lb.Text(), text)
	for i := range lb.CharWidths() {
		lb.CharWidths()[i] = 10
	}
	lb.SetText()
	lb.AddStyleRun(&StyleParams{Size: 10, ScaleX: 1}, 0, len(text), false)
	lb.ComputeBreaks()

	nCand := len(lb.candidates)
	optimalScore := lb.candidates[nCand-1].Score

	// Candidates at path[k] close the (k+1)-th line; path must end at
	// nCand-1 to cover the whole paragraph.
	indices := make([]int, 0, nCand-1)
	for i := 1; i < nCand; i++ {
		indices = append(indices, i)
	}

	best := ScoreInfty
	n := len(indices)
	for mask := 1; mask < 1<<n; mask++ {
		if mask&(1<<(n-1)) == 0 {
			continue // must include the final candidate to cover the paragraph
		}
		var path []int
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				path = append(path, indices[i])
			}
		}
		score := scorePath(lb, path)
		if score < best {
			best = score
		}
	}

	test.T(t, optimalScore <= best+1e-6, true, "optimal decider reaches the global minimum")
}

// scorePath computes the total DP cost of breaking at exactly the given
// candidate indices, in order, using the same per-transition formula as
// computeBreaksOptimal's inner loop (with the caller's line number always
// equal to its position in the path, matching how computeBreaksOptimal
// reaches any candidate lying on a path of that length).
func scorePath(lb *LineBreaker, path []int) float64 {
	total := 0.0
	prev := 0
	for k, i := range path {
		atEnd := i == len(lb.candidates)-1
		lineNumber := k
		width := lb.lineWidth.GetLineWidth(lineNumber)
		delta := lb.candidates[prev].PreBreak - (lb.candidates[i].PostBreak - width)

		widthScore := 0.0
		additionalPenalty := 0.0
		switch {
		case (atEnd || !lb.justified) && delta < 0:
			widthScore = ScoreOverfull
		case atEnd && lb.strategy != Balanced:
			additionalPenalty = lastLinePenaltyMultiplier * lb.candidates[prev].Penalty
		default:
			widthScore = delta * delta
			if delta < 0 {
				maxShrink := 0.0
				if lb.justified {
					maxShrink = shrinkability * lb.spaceWidth()
				}
				shrinkBudget := maxShrink * float64(lb.candidates[i].PostSpaceCount-lb.candidates[prev].PreSpaceCount)
				if -delta < shrinkBudget {
					widthScore *= shrinkPenaltyMultiplier
				} else {
					widthScore = ScoreOverfull
				}
			}
		}

		total += widthScore + additionalPenalty + lb.candidates[i].Penalty + lb.linePenalty
		prev = i
	}
	return total
}
