package linebreak

// WordBreaker locates locale-aware word and line-break-opportunity
// boundaries in the paragraph buffer. Implementations are held as an
// opaque handle by LineBreaker; SetText primes the breaker on the whole
// paragraph and Current/Next walk its boundaries one at a time.
type WordBreaker interface {
	SetLocale(locale string)
	SetText(text []rune)
	Current() int
	Next() int
	WordStart() int
	WordEnd() int
	// BreakBadness reports, in [0, 1], how undesirable it is to break at
	// the boundary last returned by Current/Next: 0 for an ordinary
	// space-delimited word break, greater than 0 for a break that had to
	// be inferred without a delimiting space (e.g. between two spaceless
	// script characters).
	BreakBadness() float64
	Finish()
}

// Hyphenator produces hyphenation opportunities for a single word. len(out)
// must equal len(word) after Hyphenate returns; positions where a break may
// not be inserted must be DontBreak.
type Hyphenator interface {
	Hyphenate(out []HyphenationType, word []rune, locale string)
}

// LineWidthOracle returns the desired width of a line, addressed by its
// zero-based index within the paragraph.
type LineWidthOracle interface {
	GetLineWidth(line int) float64
}

// LineWidthFunc adapts a function to a LineWidthOracle.
type LineWidthFunc func(line int) float64

func (f LineWidthFunc) GetLineWidth(line int) float64 { return f(line) }

// FixedLineWidth is a LineWidthOracle that returns the same width for every
// line.
type FixedLineWidth float64

func (w FixedLineWidth) GetLineWidth(int) float64 { return float64(w) }

// TabStopResolver returns the absolute width-into-line of the next tab
// stop, given the width already accumulated into the current line. The
// caller adds this to the line's starting width, it does not add it to
// widthIntoLine itself.
type TabStopResolver interface {
	NextTab(widthIntoLine float64) float64
}

// FixedTabStops resolves tabs to explicit Stops, in increasing order,
// falling back to a repeating grid of Default past the last entry in
// Stops (or from the start, if Stops is empty).
type FixedTabStops struct {
	Stops   []float64
	Default float64
}

func (t FixedTabStops) NextTab(widthIntoLine float64) float64 {
	for _, stop := range t.Stops {
		if widthIntoLine < stop {
			return stop
		}
	}
	if t.Default <= 0 {
		return widthIntoLine
	}
	next := t.Default
	for next <= widthIntoLine {
		next += t.Default
	}
	return next
}
