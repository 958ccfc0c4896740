package linebreak

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// patternHyphenator is the default Hyphenator, implementing Frank Liang's
// pattern-matching algorithm (as used by TeX) over a trie of hyphenation
// patterns plus a small exception dictionary, adapted to runes.
type patternHyphenator struct {
	exceptions map[string][]int
	root       *hyphenNode
}

type hyphenNode struct {
	children map[rune]*hyphenNode
	points   []int
}

func newHyphenNode() *hyphenNode {
	return &hyphenNode{children: make(map[rune]*hyphenNode)}
}

// NewPatternHyphenator builds a Hyphenator from TeX-style pattern strings
// such as "hach5" or ".ab3cd4" (digits give the hyphenation weight between
// the letters on either side of them; a leading/trailing '.' anchors the
// pattern to the start/end of the word).
func NewPatternHyphenator(patterns ...string) *patternHyphenator {
	h := &patternHyphenator{
		exceptions: make(map[string][]int),
		root:       newHyphenNode(),
	}
	for _, p := range patterns {
		h.addPattern(p)
	}
	return h
}

func (h *patternHyphenator) addPattern(pattern string) {
	letters, points := parsePattern(pattern)
	node := h.root
	for _, r := range letters {
		child, ok := node.children[r]
		if !ok {
			child = newHyphenNode()
			node.children[r] = child
		}
		node = child
	}
	node.points = points
}

// parsePattern splits a TeX pattern into its letters and the interleaved
// point values, e.g. "em3b" -> letters "emb", points [0,0,3,0].
func parsePattern(pattern string) (letters []rune, points []int) {
	points = make([]int, 0, len(pattern)+1)
	cur := 0
	for _, r := range pattern {
		if r >= '0' && r <= '9' {
			cur = int(r - '0')
		} else {
			points = append(points, cur)
			cur = 0
			letters = append(letters, r)
		}
	}
	points = append(points, cur)
	return letters, points
}

// AddException registers an explicit hyphenation for word, spelled with '-'
// at each permitted break, e.g. "as-so-ci-ate". It overrides whatever the
// pattern trie would otherwise produce for this word.
func (h *patternHyphenator) AddException(spelled string) {
	word, points := parseException(spelled)
	h.exceptions[strings.ToLower(word)] = points
}

// parseException returns points with one entry per letter of word, where
// points[k] odd means a break is permitted immediately after word[k] --
// the same indexing points() returns from the pattern trie, so Hyphenate
// can read either source without distinguishing them.
func parseException(spelled string) (word string, points []int) {
	for _, r := range spelled {
		if r == '-' {
			points[len(points)-1] = 1
			continue
		}
		word += string(r)
		points = append(points, 0)
	}
	return word, points
}

// LoadTeXPatterns parses a TeX hyphenation file: \patterns{...} and
// \hyphenation{...} blocks, one entry per line, '%' starting a comment.
func LoadTeXPatterns(r io.Reader) (*patternHyphenator, error) {
	h := NewPatternHyphenator()

	const (
		blockNone = iota
		blockPatterns
		blockExceptions
	)

	b := bufio.NewReader(r)
	block := blockNone
	for {
		line, err := b.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if idx := strings.IndexByte(line, '%'); idx != -1 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)

		if line != "" {
			switch line {
			case `\patterns{`:
				block = blockPatterns
			case `\hyphenation{`:
				block = blockExceptions
			case `}`:
				block = blockNone
			default:
				switch block {
				case blockPatterns:
					for _, field := range strings.Fields(line) {
						h.addPattern(field)
					}
				case blockExceptions:
					for _, field := range strings.Fields(line) {
						h.AddException(field)
					}
				}
			}
		}

		if err == io.EOF {
			break
		}
	}
	if block != blockNone {
		return nil, errors.New("linebreak: unterminated block in hyphenation pattern file")
	}
	return h, nil
}

// Hyphenate implements Hyphenator. Words of 4 runes or fewer are never
// hyphenated, matching Liang's original algorithm.
func (h *patternHyphenator) Hyphenate(out []HyphenationType, word []rune, locale string) {
	for i := range out {
		out[i] = DontBreak
	}
	if len(word) <= 4 {
		return
	}
	pts := h.points(word)
	for j := 1; j < len(word); j++ {
		if pts[j-1]%2 != 0 {
			out[j] = BreakAndInsertHyphen
		}
	}
}

// points returns, for a word of length L, the hyphenation weight after each
// of its letters (L+1 entries from the pattern trie, L from an exception):
// pts[k] odd means a break is permitted immediately after word[k].
func (h *patternHyphenator) points(word []rune) []int {
	lower := []rune(strings.ToLower(string(word)))
	if pts, ok := h.exceptions[string(lower)]; ok {
		return pts
	}

	work := make([]rune, 0, len(lower)+2)
	work = append(work, '.')
	work = append(work, lower...)
	work = append(work, '.')

	points := make([]int, len(work)+1)
	for i := range work {
		node := h.root
		for j := i; j < len(work); j++ {
			child, ok := node.children[work[j]]
			if !ok {
				break
			}
			node = child
			if node.points != nil {
				for k, p := range node.points {
					if i+k < len(points) && p > points[i+k] {
						points[i+k] = p
					}
				}
			}
		}
	}

	// No hyphen in the first two characters or the last two.
	points[1], points[2] = 0, 0
	n := len(points)
	points[n-2], points[n-3] = 0, 0

	return points[2:]
}
