// Package linebreak implements the line-breaking core of a text layout
// pipeline: given a paragraph of already-shaped text together with
// per-character advance widths and vertical extents, it decides where to
// break the paragraph into lines.
//
// The package composes four external collaborators — a [WordBreaker], a
// [Hyphenator], a [LineWidthOracle] and a [TabStopResolver] — into a single
// incremental state machine. A paragraph is built by calling [LineBreaker.AddStyleRun]
// once per contiguous run of uniform style and direction (and once per
// replacement span via [LineBreaker.AddReplacement]); [LineBreaker.ComputeBreaks]
// then dispatches to a greedy or an optimal (dynamic-programming) decider.
//
// The decider's candidate list follows the box/glue/penalty vocabulary
// Donald E. Knuth and Michael F. Plass describe in "Breaking Paragraphs
// into Lines" (1981): the optimal decider scores candidate break points
// with a dynamic program over that vocabulary, while the greedy decider
// commits to the best candidate before a line would overflow.
package linebreak
