package linebreak

// computeBreaksOptimal runs the dynamic-programming decider over the full
// candidate list: candidates[i].Score becomes the minimum cumulative cost
// of any path of breaks ending at i, and candidates[i].Prev the preceding
// break on that path. active and bestHope/leftEdge prune candidates that
// can provably never be on the optimal path, keeping the loop close to
// linear in the common case instead of O(n^2).
func (lb *LineBreaker) computeBreaksOptimal() {
	nCand := len(lb.candidates)

	maxShrink := 0.0
	if lb.justified {
		maxShrink = shrinkability * lb.spaceWidth()
	}

	lineNumbers := make([]int, 1, nCand)
	lineNumbers[0] = 0

	active := 0
	for i := 1; i < nCand; i++ {
		atEnd := i == nCand-1
		best := ScoreInfty
		bestPrev := 0

		lineNumberLast := lineNumbers[active]
		width := lb.lineWidth.GetLineWidth(lineNumberLast)

		leftEdge := lb.candidates[i].PostBreak - width
		bestHope := 0.0

		for j := active; j < i; j++ {
			lineNumber := lineNumbers[j]
			if lineNumber != lineNumberLast {
				widthNew := lb.lineWidth.GetLineWidth(lineNumber)
				if widthNew != width {
					leftEdge = lb.candidates[i].PostBreak - widthNew
					bestHope = 0
					width = widthNew
				}
				lineNumberLast = lineNumber
			}

			jScore := lb.candidates[j].Score
			if jScore+bestHope >= best {
				continue
			}

			delta := lb.candidates[j].PreBreak - leftEdge

			widthScore := 0.0
			additionalPenalty := 0.0
			switch {
			case (atEnd || !lb.justified) && delta < 0:
				widthScore = ScoreOverfull
			case atEnd && lb.strategy != Balanced:
				additionalPenalty = lastLinePenaltyMultiplier * lb.candidates[j].Penalty
			default:
				widthScore = delta * delta
				if delta < 0 {
					shrinkBudget := maxShrink * float64(lb.candidates[i].PostSpaceCount-lb.candidates[j].PreSpaceCount)
					if -delta < shrinkBudget {
						widthScore *= shrinkPenaltyMultiplier
					} else {
						widthScore = ScoreOverfull
					}
				}
			}

			if delta < 0 {
				active = j + 1
			} else {
				bestHope = widthScore
			}

			score := jScore + widthScore + additionalPenalty
			if score <= best {
				best = score
				bestPrev = j
			}
		}

		lb.candidates[i].Score = best + lb.candidates[i].Penalty + lb.linePenalty
		lb.candidates[i].Prev = bestPrev
		lineNumbers = append(lineNumbers, lineNumbers[bestPrev]+1)
	}

	lb.finishBreaksOptimal()
}

// finishBreaksOptimal walks the best-path links built by computeBreaksOptimal
// backward from the last candidate, then reverses the result into paragraph
// order. Unlike the chain of Prev links, which only need to locate each
// line's start, the five output arrays must all be reversed together so
// that breaks[l]/widths[l]/ascents[l]/descents[l]/flags[l] describe the
// same line l.
func (lb *LineBreaker) finishBreaksOptimal() {
	nCand := len(lb.candidates)

	var breaks []int
	var widths []float64
	var ascents []float64
	var descents []float64
	var flagsList []int

	prev := 0
	for i := nCand - 1; i > 0; i = prev {
		prev = lb.candidates[i].Prev

		breaks = append(breaks, lb.candidates[i].Offset)
		widths = append(widths, lb.candidates[i].PostBreak-lb.candidates[prev].PreBreak)

		extent := lb.computeMaxExtent(prev+1, i)
		ascents = append(ascents, extent.Ascent)
		descents = append(descents, extent.Descent)

		flags := int(ForThisLine(lb.candidates[i].HyphenType))
		if prev > 0 {
			flags |= int(ForNextLine(lb.candidates[prev].HyphenType))
		}
		flagsList = append(flagsList, flags)
	}

	reverseInts(breaks)
	reverseFloats(widths)
	reverseFloats(ascents)
	reverseFloats(descents)
	reverseInts(flagsList)

	lb.breaks = breaks
	lb.widths = widths
	lb.ascents = ascents
	lb.descents = descents
	lb.flags = flagsList
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reverseFloats(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
