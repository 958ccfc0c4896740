package linebreak

import "math"

// computeBreaksGreedy flushes the trailing partial line left over after the
// last call to addCandidate, since the greedy decider only pushes a break
// when a later candidate overflows the current line.
func (lb *LineBreaker) computeBreaksGreedy() {
	nCand := len(lb.candidates)
	if nCand == 1 || lb.lastBreak != nCand-1 {
		last := nCand - 1
		lastCand := lb.candidates[last]
		lb.pushBreak(lastCand.Offset, lastCand.PostBreak-lb.preBreak,
			lb.computeMaxExtent(lb.lastBreak+1, last), lb.lastHyphenation)
	}
}

// ComputeBreaks runs the configured decider over every candidate collected
// since SetText and returns the number of lines produced (len(Breaks())).
// Call it once per paragraph, after all AddStyleRun/AddReplacement calls.
func (lb *LineBreaker) ComputeBreaks() int {
	if lb.strategy == Greedy {
		lb.computeBreaksGreedy()
	} else {
		lb.computeBreaksOptimal()
	}
	return len(lb.breaks)
}

// Breaks returns the rune offset, one past the last character, of each
// line, in paragraph order.
func (lb *LineBreaker) Breaks() []int { return lb.breaks }

// Widths returns the measured width of each line, parallel to Breaks.
func (lb *LineBreaker) Widths() []float64 { return lb.widths }

// Ascents returns the maximum (most negative) ascent of each line.
func (lb *LineBreaker) Ascents() []float64 { return lb.ascents }

// Descents returns the maximum descent of each line.
func (lb *LineBreaker) Descents() []float64 { return lb.descents }

// Flags returns the per-line flag word: HasTab and Hyphen extract its
// fields.
func (lb *LineBreaker) Flags() []int { return lb.flags }

// Finish releases per-paragraph state and resets configuration (strategy,
// hyphenation frequency, justification, line penalty) to their defaults so
// the instance is ready for the next paragraph. Buffers are retained across
// calls unless they grew past MaxTextBufRetain, bounding peak memory on a
// long-lived instance that occasionally breaks a very large paragraph.
func (lb *LineBreaker) Finish() {
	lb.wordBreaker.Finish()

	lb.width = 0
	lb.spaceCount = 0
	lb.candidates = lb.candidates[:0]
	lb.breaks = lb.breaks[:0]
	lb.widths = lb.widths[:0]
	lb.ascents = lb.ascents[:0]
	lb.descents = lb.descents[:0]
	lb.flags = lb.flags[:0]

	if len(lb.text) > MaxTextBufRetain {
		lb.text = nil
		lb.charWidths = nil
		lb.charExtents = nil
		lb.hyphBuf = nil
		lb.candidates = nil
		lb.breaks = nil
		lb.widths = nil
		lb.ascents = nil
		lb.descents = nil
		lb.flags = nil
	}

	lb.strategy = Greedy
	lb.hyphenationFrequency = HyphenationNormal
	lb.justified = false
	lb.linePenalty = 0
	lb.lastBreak = 0
	lb.bestBreak = 0
	lb.bestScore = ScoreInfty
	lb.preBreak = 0
	lb.lastHyphenation = NoEdit
	lb.firstTabIndex = math.MaxInt
}
