// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import "github.com/pdiddy/logseq-export/internal/outline"

// state holds the running counters of one document conversion. Each call
// to Render owns its own state.
type state struct {
	// targetIndent is the output depth, in tabs, of the current line.
	targetIndent int

	// lastTargetIndent is the output depth of the most recent node-start
	// line. Continuation lines never move it.
	lastTargetIndent int

	// listDepth counts consecutive indent increases between list nodes.
	// It goes negative when a page dedents below its starting level.
	listDepth int

	// inCode is set between an opening and a closing fence.
	inCode bool

	// skip is the number of upcoming lines swallowed by a metadata block.
	skip int
}

// advance computes targetIndent for lines[i]. Titles, and whatever comes
// right after a title, sit at the document root. Other lines move
// relative to the last node-start depth by the change in raw indent;
// the first nesting step is absorbed because Markdown renders one extra
// tab as the same list level.
func (s *state) advance(lines []outline.ClassifiedLine, i int) {
	if i == 0 {
		s.targetIndent = 0
		return
	}

	cur, prev := lines[i], lines[i-1]
	if cur.Kind == outline.KindTitle || prev.Kind == outline.KindTitle {
		s.targetIndent = 0
		return
	}

	switch {
	case cur.Indent > prev.Indent:
		s.listDepth++
		if s.listDepth > 1 {
			s.targetIndent = s.lastTargetIndent + 1
		} else {
			s.targetIndent = s.lastTargetIndent
		}
	case cur.Indent < prev.Indent:
		s.targetIndent = max(0, s.lastTargetIndent-(prev.Indent-cur.Indent))
		s.listDepth--
	default:
		s.targetIndent = s.lastTargetIndent
	}
}

// commit records the depth of a finished line as the new baseline when
// the line opened a node.
func (s *state) commit(role outline.Role) {
	if role == outline.NodeStart {
		s.lastTargetIndent = s.targetIndent
	}
}
