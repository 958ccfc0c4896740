package linebreak

import (
	"math"
	"strings"
	"unicode"
)

const (
	tab  = '\t'
	nbsp = ' '
)

// StyleParams carries the paint-derived quantities AddStyleRun needs to
// compute the hyphen penalty and to size a hyphen glyph inserted at a
// hyphenated break; text shaping itself happens before AddStyleRun is
// called; CharWidths/CharExtents must already be populated for [start,end).
type StyleParams struct {
	Size        float64 // font size
	ScaleX      float64 // horizontal scale
	HyphenWidth float64 // advance of the hyphen glyph at Size, used when a break inserts one
}

// LineBreaker holds all state for breaking a single paragraph into lines.
// It is not safe for concurrent use; each paragraph needs its own instance,
// or the same instance reused sequentially with Finish between paragraphs.
type LineBreaker struct {
	text        []rune
	charWidths  []float64
	charExtents []Extent

	locale      string
	hyphenator  Hyphenator
	wordBreaker WordBreaker

	lineWidth LineWidthOracle
	tabStops  TabStopResolver

	strategy             BreakStrategy
	hyphenationFrequency HyphenationFrequency
	justified            bool
	linePenalty          float64

	candidates []Candidate
	hyphBuf    []HyphenationType

	width      float64
	spaceCount int

	lastBreak       int
	preBreak        float64
	bestBreak       int
	bestScore       float64
	lastHyphenation HyphenEdit
	firstTabIndex   int

	breaks   []int
	widths   []float64
	ascents  []float64
	descents []float64
	flags    []int
}

// NewLineBreaker returns a LineBreaker configured with the default
// unicode-aware WordBreaker and no hyphenator. A LineWidthOracle must be
// installed with SetLineWidthOracle before AddStyleRun is called.
func NewLineBreaker() *LineBreaker {
	return &LineBreaker{
		wordBreaker:          NewUnicodeWordBreaker(),
		tabStops:             FixedTabStops{},
		strategy:             Greedy,
		hyphenationFrequency: HyphenationNormal,
		bestScore:            ScoreInfty,
		firstTabIndex:        math.MaxInt,
	}
}

func (lb *LineBreaker) SetWordBreaker(w WordBreaker)         { lb.wordBreaker = w }
func (lb *LineBreaker) SetLineWidthOracle(o LineWidthOracle) { lb.lineWidth = o }
func (lb *LineBreaker) SetTabStopResolver(r TabStopResolver) { lb.tabStops = r }
func (lb *LineBreaker) SetStrategy(s BreakStrategy)          { lb.strategy = s }
func (lb *LineBreaker) SetHyphenationFrequency(f HyphenationFrequency) {
	lb.hyphenationFrequency = f
}
func (lb *LineBreaker) SetJustified(j bool) { lb.justified = j }

// SetLocales walks localeList in order and adopts the first tag that
// parses as a well-formed locale, together with the hyphenator at the same
// position in hyphenators. If none parses, the root locale is used with no
// hyphenator. Script-based locale selection is not performed.
func (lb *LineBreaker) SetLocales(localeList string, hyphenators []Hyphenator) {
	lb.locale = ""
	lb.hyphenator = nil
	for i, tag := range strings.Split(localeList, ",") {
		if locale, ok := parseLocale(tag); ok {
			lb.locale = locale
			if i < len(hyphenators) {
				lb.hyphenator = hyphenators[i]
			}
			break
		}
	}
	lb.wordBreaker.SetLocale(lb.locale)
}

func parseLocale(tag string) (string, bool) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", false
	}
	for _, r := range tag {
		if r != '-' && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return "", false
		}
	}
	return tag, true
}

// Resize allocates the paragraph buffers for n runes. The caller fills
// Text/CharWidths/CharExtents (typically via a Shaper) before calling
// SetText.
func (lb *LineBreaker) Resize(n int) {
	if cap(lb.text) >= n {
		lb.text = lb.text[:n]
		lb.charWidths = lb.charWidths[:n]
		lb.charExtents = lb.charExtents[:n]
	} else {
		lb.text = make([]rune, n)
		lb.charWidths = make([]float64, n)
		lb.charExtents = make([]Extent, n)
	}
}

// Text returns the mutable paragraph buffer sized by the last Resize call.
func (lb *LineBreaker) Text() []rune { return lb.text }

// CharWidths returns the mutable per-rune advance-width buffer.
func (lb *LineBreaker) CharWidths() []float64 { return lb.charWidths }

// CharExtents returns the mutable per-rune vertical-extent buffer.
func (lb *LineBreaker) CharExtents() []Extent { return lb.charExtents }

// SetText primes the word breaker on the whole paragraph buffer and resets
// per-paragraph greedy and candidate state. Call it once, after Text,
// CharWidths and CharExtents have been fully populated and before the
// first AddStyleRun.
func (lb *LineBreaker) SetText() {
	lb.wordBreaker.SetText(lb.text)
	lb.wordBreaker.Next()

	lb.candidates = append(lb.candidates[:0], Candidate{HyphenType: DontBreak})

	lb.breaks = lb.breaks[:0]
	lb.widths = lb.widths[:0]
	lb.ascents = lb.ascents[:0]
	lb.descents = lb.descents[:0]
	lb.flags = lb.flags[:0]

	lb.lastBreak = 0
	lb.bestBreak = 0
	lb.bestScore = ScoreInfty
	lb.preBreak = 0
	lb.lastHyphenation = NoEdit
	lb.firstTabIndex = math.MaxInt
	lb.spaceCount = 0
}

// isLineEndSpace reports whether c is a space that disappears at the end of
// a line: Unicode General_Category=Space_Separator minus Line_Break=Glue,
// plus '\n'. All such characters are in the BMP.
func isLineEndSpace(c rune) bool {
	return c == '\n' || c == ' ' || c == 0x1680 ||
		(0x2000 <= c && c <= 0x200A && c != 0x2007) ||
		c == 0x205F || c == 0x3000
}

// IsWordSpace reports whether c is used for inter-word justification
// shrinkability accounting: ASCII space and Unicode space separators,
// excluding no-break space.
func IsWordSpace(c rune) bool {
	return c != nbsp && unicode.Is(unicode.Zs, c)
}

// hyphenate fills lb.hyphBuf with one HyphenationType per rune of str. str
// may contain embedded no-break spaces; each maximal non-NBSP subsequence
// is hyphenated independently and NBSP positions get DontBreak.
func (lb *LineBreaker) hyphenate(str []rune) {
	lb.hyphBuf = lb.hyphBuf[:0]

	inWord := false
	wordStart := 0
	for i := 0; i <= len(str); i++ {
		if i == len(str) || str[i] == nbsp {
			if inWord {
				wordLen := i - wordStart
				if wordLen <= LongestHyphenatedWord {
					out := make([]HyphenationType, wordLen)
					lb.hyphenator.Hyphenate(out, str[wordStart:i], lb.locale)
					lb.hyphBuf = append(lb.hyphBuf, out...)
				} else {
					for k := 0; k < wordLen; k++ {
						lb.hyphBuf = append(lb.hyphBuf, DontBreak)
					}
				}
				inWord = false
			}
			if i < len(str) {
				lb.hyphBuf = append(lb.hyphBuf, DontBreak)
			}
		} else if !inWord {
			inWord = true
			wordStart = i
		}
	}
}

func sumWidths(widths []float64, start, end int) float64 {
	s := 0.0
	for i := start; i < end; i++ {
		s += widths[i]
	}
	return s
}

// AddStyleRun processes the maximal range [start, end) of uniform style and
// direction, appending break candidates as word and hyphenation boundaries
// are crossed. style is nil for a replacement span, where CharWidths and
// CharExtents are assumed already populated by AddReplacement. It returns
// the summed width of [start, end) when style is non-nil, and 0 when style
// is nil.
func (lb *LineBreaker) AddStyleRun(style *StyleParams, start, end int, isRtl bool) float64 {
	if start < 0 || end > len(lb.text) || start > end {
		panic("linebreak: style run out of paragraph bounds")
	}

	width := 0.0
	hyphenPenalty := 0.0
	if style != nil {
		width = sumWidths(lb.charWidths, start, end)

		hyphenPenalty = 0.5 * style.Size * style.ScaleX * lb.lineWidth.GetLineWidth(0)
		if lb.hyphenationFrequency == HyphenationNormal {
			hyphenPenalty *= 4.0
		}
		if lb.justified {
			hyphenPenalty *= 0.25
		} else {
			lb.linePenalty = math.Max(lb.linePenalty, hyphenPenalty*linePenaltyMultiplier)
		}
	}

	current := lb.wordBreaker.Current()
	afterWord := start
	lastBreak := start
	lastBreakWidth := lb.width
	postBreak := lb.width
	postSpaceCount := lb.spaceCount
	var extent Extent

	for i := start; i < end; i++ {
		c := lb.text[i]
		if c == tab {
			lb.width = lb.preBreak + lb.tabStops.NextTab(lb.width-lb.preBreak)
			if lb.firstTabIndex == math.MaxInt {
				lb.firstTabIndex = i
			}
			// Fall back to greedy; the optimal decider cannot reason about tabs.
			lb.strategy = Greedy
		} else {
			if IsWordSpace(c) {
				lb.spaceCount++
			}
			lb.width += lb.charWidths[i]
			extent.ExtendBy(lb.charExtents[i])
			if !isLineEndSpace(c) {
				postBreak = lb.width
				postSpaceCount = lb.spaceCount
				afterWord = i + 1
			}
		}

		if i+1 == current {
			wordStart := lb.wordBreaker.WordStart()
			wordEnd := lb.wordBreaker.WordEnd()
			if style != nil && lb.hyphenator != nil && lb.hyphenationFrequency != HyphenationNone &&
				wordStart >= start && wordEnd > wordStart {
				lb.hyphenate(lb.text[wordStart:wordEnd])

				for j := wordStart; j < wordEnd; j++ {
					hyph := lb.hyphBuf[j-wordStart]
					if hyph == DontBreak {
						continue
					}
					firstPartWidth := sumWidths(lb.charWidths, lastBreak, j)
					if hyph == BreakAndInsertHyphen {
						firstPartWidth += style.HyphenWidth
					}
					hyphPostBreak := lastBreakWidth + firstPartWidth
					secondPartWidth := sumWidths(lb.charWidths, j, afterWord)
					hyphPreBreak := postBreak - secondPartWidth

					lb.addWordBreak(j, hyphPreBreak, hyphPostBreak, postSpaceCount, postSpaceCount,
						extent, hyphenPenalty, hyph)
					extent.Reset()
				}
			}

			// Skip the word-boundary candidate at a zero-width position
			// inside a replacement span.
			if style != nil || current == end || lb.charWidths[current] > 0 {
				penalty := hyphenPenalty * lb.wordBreaker.BreakBadness()
				lb.addWordBreak(current, lb.width, postBreak, lb.spaceCount, postSpaceCount,
					extent, penalty, DontBreak)
				extent.Reset()
			}

			lastBreak = current
			lastBreakWidth = lb.width
			current = lb.wordBreaker.Next()
		}
	}

	return width
}

// AddReplacement zeros the per-rune widths and extents of [start, end),
// places width at start, and processes the span as a style run with no
// paint.
func (lb *LineBreaker) AddReplacement(start, end int, width float64) float64 {
	lb.charWidths[start] = width
	for i := start + 1; i < end; i++ {
		lb.charWidths[i] = 0
	}
	for i := start; i < end; i++ {
		lb.charExtents[i] = Extent{}
	}
	lb.AddStyleRun(nil, start, end, false)
	return width
}

// addWordBreak appends a word break (possibly for a hyphenated fragment),
// synthesizing desperate breaks first if the run since the last candidate
// overflows even a single line.
func (lb *LineBreaker) addWordBreak(offset int, preBreak, postBreak float64, preSpaceCount, postSpaceCount int, extent Extent, penalty float64, hyph HyphenationType) {
	width := lb.candidates[len(lb.candidates)-1].PreBreak
	if postBreak-width > lb.currentLineWidth() {
		// The run since the previous candidate doesn't fit on one line even
		// on its own; break at every non-zero-width rune in between. These
		// breaks are based on the shaping of the original, unbroken text,
		// so they're imprecise in the presence of kerning or ligatures.
		i := lb.candidates[len(lb.candidates)-1].Offset
		width += lb.charWidths[i]
		i++
		for ; i < offset; i++ {
			w := lb.charWidths[i]
			if w > 0 {
				lb.addCandidate(Candidate{
					Offset:         i,
					PreBreak:       width,
					PostBreak:      width,
					PreSpaceCount:  postSpaceCount,
					PostSpaceCount: postSpaceCount,
					Extent:         lb.charExtents[i],
					Penalty:        ScoreDesperate,
					HyphenType:     BreakAndDontInsertHyphen,
				})
				width += w
			}
		}
	}

	lb.addCandidate(Candidate{
		Offset:         offset,
		PreBreak:       preBreak,
		PostBreak:      postBreak,
		PreSpaceCount:  preSpaceCount,
		PostSpaceCount: postSpaceCount,
		Extent:         extent,
		Penalty:        penalty,
		HyphenType:     hyph,
	})
}

// addCandidate appends cand and, inline, runs the greedy decider: it tracks
// the best candidate seen since the last committed break and commits a
// break whenever the line would otherwise overflow.
func (lb *LineBreaker) addCandidate(cand Candidate) {
	candIndex := len(lb.candidates)
	lb.candidates = append(lb.candidates, cand)

	if cand.PostBreak-lb.preBreak > lb.currentLineWidth() {
		// This break would overfill the line; break at the best candidate
		// found so far (greedy).
		if lb.bestBreak == lb.lastBreak {
			// Nothing good since the last break; break here.
			lb.bestBreak = candIndex
		}
		lb.pushGreedyBreak()
	}

	for lb.lastBreak != candIndex && cand.PostBreak-lb.preBreak > lb.currentLineWidth() {
		// The line still overflows after breaking once; find the
		// least-penalty candidate after the last break and use it instead.
		for i := lb.lastBreak + 1; i < candIndex; i++ {
			penalty := lb.candidates[i].Penalty
			if penalty <= lb.bestScore {
				lb.bestBreak = i
				lb.bestScore = penalty
			}
		}
		if lb.bestBreak == lb.lastBreak {
			// Found nothing usable; break here to guarantee progress.
			lb.bestBreak = candIndex
		}
		lb.pushGreedyBreak()
	}

	if cand.Penalty <= lb.bestScore {
		lb.bestBreak = candIndex
		lb.bestScore = cand.Penalty
	}
}

func (lb *LineBreaker) pushGreedyBreak() {
	best := lb.candidates[lb.bestBreak]
	lb.pushBreak(best.Offset, best.PostBreak-lb.preBreak,
		lb.computeMaxExtent(lb.lastBreak+1, lb.bestBreak),
		lb.lastHyphenation|ForThisLine(best.HyphenType))
	lb.bestScore = ScoreInfty
	lb.lastBreak = lb.bestBreak
	lb.preBreak = best.PreBreak
	lb.lastHyphenation = ForNextLine(best.HyphenType)
}

func (lb *LineBreaker) pushBreak(offset int, width float64, extent Extent, hyphenEdit HyphenEdit) {
	lb.breaks = append(lb.breaks, offset)
	lb.widths = append(lb.widths, width)
	lb.ascents = append(lb.ascents, extent.Ascent)
	lb.descents = append(lb.descents, extent.Descent)
	flags := int(hyphenEdit)
	if lb.firstTabIndex < offset {
		flags |= 1 << kTabShift
	}
	lb.flags = append(lb.flags, flags)
	lb.firstTabIndex = math.MaxInt
}

// computeMaxExtent returns the extent covering candidates[start] through
// candidates[end], inclusive.
func (lb *LineBreaker) computeMaxExtent(start, end int) Extent {
	res := lb.candidates[end].Extent
	for j := start; j < end; j++ {
		res.ExtendBy(lb.candidates[j].Extent)
	}
	return res
}

func (lb *LineBreaker) currentLineWidth() float64 {
	return lb.lineWidth.GetLineWidth(len(lb.breaks))
}

// spaceWidth returns the width of the first word-space in the paragraph, or
// 0 if there are none. Used by the optimal decider's shrinkability check.
func (lb *LineBreaker) spaceWidth() float64 {
	for i, c := range lb.text {
		if IsWordSpace(c) {
			return lb.charWidths[i]
		}
	}
	return 0
}
