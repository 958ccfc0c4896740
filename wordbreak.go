package linebreak

import (
	"sort"
	"unicode"

	"github.com/scalecode-solutions/runeseg"
)

// unicodeWordBreaker is the default WordBreaker, grounded on UAX#14 line
// segmentation and UAX#29 word segmentation from runeseg. SetText
// precomputes the full boundary list up front, since runeseg's API walks a
// string forward and the decider needs random re-entry (WordStart/WordEnd
// queries interleaved with Current/Next walks).
type unicodeWordBreaker struct {
	locale string
	text   []rune

	breaks  []int // rune offsets of line-break opportunities, ascending
	badness []float64
	pos     int // index into breaks; -1 before the first Next call

	wordTokens []wordToken // UAX#29 word tokens, ascending by end offset
}

type wordToken struct{ start, end int }

// NewUnicodeWordBreaker returns a WordBreaker backed by runeseg. It ignores
// locale: runeseg implements the locale-independent UAX#14/#29 defaults.
func NewUnicodeWordBreaker() WordBreaker {
	return &unicodeWordBreaker{pos: -1}
}

func (w *unicodeWordBreaker) SetLocale(locale string) { w.locale = locale }

func (w *unicodeWordBreaker) SetText(text []rune) {
	w.text = text
	w.breaks = w.breaks[:0]
	w.badness = w.badness[:0]
	w.pos = -1
	w.wordTokens = w.wordTokens[:0]

	str := string(text)
	offset, state := 0, -1
	for len(str) > 0 {
		segment, rest, _, newState := runeseg.FirstLineSegmentInString(str, state)
		offset += len([]rune(segment))

		badness := 0.0
		if r := lastRune(segment); r != 0 && !isBreakDelimiter(r) {
			badness = 1.0
		}

		w.breaks = append(w.breaks, offset)
		w.badness = append(w.badness, badness)

		str, state = rest, newState
	}

	str, offset, state = string(text), 0, -1
	for len(str) > 0 {
		word, rest, newState := runeseg.FirstWordInString(str, state)
		runes := []rune(word)
		start := offset
		offset += len(runes)
		if isWordToken(runes) {
			w.wordTokens = append(w.wordTokens, wordToken{start: start, end: offset})
		}
		str, state = rest, newState
	}
}

func (w *unicodeWordBreaker) Current() int {
	if w.pos < 0 {
		if len(w.breaks) == 0 {
			return len(w.text)
		}
		return w.breaks[0]
	}
	return w.breaks[w.pos]
}

func (w *unicodeWordBreaker) Next() int {
	if len(w.breaks) == 0 {
		return len(w.text)
	}
	if w.pos < len(w.breaks)-1 {
		w.pos++
	}
	return w.breaks[w.pos]
}

func (w *unicodeWordBreaker) WordStart() int {
	if t, ok := w.wordBefore(w.Current()); ok {
		return t.start
	}
	return w.Current()
}

func (w *unicodeWordBreaker) WordEnd() int {
	if t, ok := w.wordBefore(w.Current()); ok {
		return t.end
	}
	return w.Current()
}

// wordBefore finds the word token ending nearest to, but not after, offset:
// the word the line-break boundary at offset actually follows, once any
// trailing line-end space the boundary itself swallowed is stripped off.
func (w *unicodeWordBreaker) wordBefore(offset int) (wordToken, bool) {
	i := sort.Search(len(w.wordTokens), func(i int) bool { return w.wordTokens[i].end > offset })
	if i == 0 {
		return wordToken{}, false
	}
	return w.wordTokens[i-1], true
}

// BreakBadness returns 0 for a break delimited by whitespace or a visible
// hyphen, 1 for one inferred without such a delimiter (e.g. between two
// adjacent CJK ideographs).
func (w *unicodeWordBreaker) BreakBadness() float64 {
	if w.pos < 0 || w.pos >= len(w.badness) {
		return 0
	}
	return w.badness[w.pos]
}

func (w *unicodeWordBreaker) Finish() {
	w.text = nil
	w.breaks = w.breaks[:0]
	w.badness = w.badness[:0]
	w.wordTokens = nil
	w.pos = -1
}

func lastRune(s string) rune {
	r := rune(0)
	for _, c := range s {
		r = c
	}
	return r
}

func isBreakDelimiter(r rune) bool {
	return IsWordSpace(r) || r == '\n' || r == '\t' || r == '-'
}

func isWordToken(runes []rune) bool {
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
