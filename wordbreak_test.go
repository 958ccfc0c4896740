package linebreak

import (
	"testing"

	"github.com/tdewolff/test"
)

// TestWordBreakerBasicWalk checks that Next walks the precomputed boundary
// list from the start of the text to its end, strictly increasing, and
// clamps at the last boundary once exhausted.
func TestWordBreakerBasicWalk(t *testing.T) {
	w := NewUnicodeWordBreaker()
	text := []rune("hi there")
	w.SetText(text)

	test.T(t, w.Current(), 3, "before the first Next, Current reports the first boundary")

	var offsets []int
	prev := -1
	for {
		o := w.Next()
		test.T(t, o > prev, true, "boundaries strictly increase")
		prev = o
		offsets = append(offsets, o)
		if o >= len(text) {
			break
		}
	}
	test.T(t, offsets[len(offsets)-1], len(text), "the last boundary reaches the end of the text")

	// Calling Next again once exhausted stays at the final boundary.
	test.T(t, w.Next(), len(text))
	test.T(t, w.Next(), len(text))
}

// TestWordBreakerWordStartEnd checks that a break landing exactly at the end
// of a letter run (no trailing whitespace consumed into the line-break
// boundary, as happens at the end of the paragraph) resolves WordStart/
// WordEnd to that run's bounds.
func TestWordBreakerWordStartEnd(t *testing.T) {
	w := NewUnicodeWordBreaker()
	text := []rune("hello")
	w.SetText(text)

	o := w.Next()
	test.T(t, o, len(text), "the only boundary is at the end of the paragraph")
	test.T(t, w.WordStart(), 0)
	test.T(t, w.WordEnd(), 5)
}

// TestWordBreakerWordStartEndAfterTrailingSpace checks the common case: a
// line-break boundary lands after the space trailing a word, not at the
// word's own end offset. WordStart/WordEnd must still resolve to that word
// (not collapse to the boundary itself), or interior words could never be
// offered to the hyphenator.
func TestWordBreakerWordStartEndAfterTrailingSpace(t *testing.T) {
	w := NewUnicodeWordBreaker()
	text := []rune("cat dog")
	w.SetText(text)

	o := w.Next()
	test.T(t, o, 4, "the boundary follows the space after \"cat\"")
	test.T(t, w.WordStart(), 0)
	test.T(t, w.WordEnd(), 3, "WordEnd strips the trailing space the boundary swallowed")
}

// TestWordBreakerBreakBadness checks the binary badness model: a boundary
// delimited by whitespace is not bad (0), one inferred at the end of the
// text with no trailing delimiter is bad (1), matching isBreakDelimiter.
func TestWordBreakerBreakBadness(t *testing.T) {
	w := NewUnicodeWordBreaker()
	text := []rune("ab cd")
	w.SetText(text)

	test.T(t, w.Next(), 3, "boundary after the space")
	test.T(t, w.BreakBadness(), 0.0, "space-delimited breaks are not bad")

	test.T(t, w.Next(), 5, "boundary at the end of the text")
	test.T(t, w.BreakBadness(), 1.0, "a break with no delimiter before it is bad")
}

// TestWordBreakerFinishResets checks that Finish clears walk state and that
// the breaker is ready to accept a new SetText afterward.
func TestWordBreakerFinishResets(t *testing.T) {
	w := NewUnicodeWordBreaker()
	text := []rune("ab cd")
	w.SetText(text)
	w.Next()
	w.Next()

	w.Finish()

	internal := w.(*unicodeWordBreaker)
	test.T(t, internal.pos, -1, "Finish rewinds the walk position")
	test.T(t, len(internal.breaks), 0, "Finish clears the boundary list")

	// A second paragraph through the same instance behaves like a fresh one.
	text2 := []rune("ef gh")
	w.SetText(text2)
	test.T(t, w.Next(), 3)
	test.T(t, w.Next(), 5)
}

// TestWordBreakerEmptyText checks that an empty paragraph never advances
// past offset 0 and never panics on an empty boundary list.
func TestWordBreakerEmptyText(t *testing.T) {
	w := NewUnicodeWordBreaker()
	w.SetText(nil)

	test.T(t, w.Current(), 0)
	test.T(t, w.Next(), 0)
	test.T(t, w.BreakBadness(), 0.0)
}
