// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"fmt"
	"regexp"
)

var (
	nodeFence         = regexp.MustCompile("^- ```")
	continuationFence = regexp.MustCompile("^  ```")
)

// ClassificationError reports a line whose leading characters match none
// of the classification rules. Conversion of the document must stop.
type ClassificationError struct {
	// Number is the 1-based line number within the document, or 0 when
	// the line was classified on its own.
	Number int

	// Line is the offending line as read.
	Line string
}

func (e *ClassificationError) Error() string {
	if e.Number > 0 {
		return fmt.Sprintf("unclassifiable line %d: %q", e.Number, e.Line)
	}
	return fmt.Sprintf("unclassifiable line: %q", e.Line)
}

// Classify decides the kind and role of a line from the first character
// of its content (the tag) and the third character (the character after
// a one-character tag and a space). Characters are counted as runes.
// Empty content is a continuation with no text.
func Classify(content string) (LineKind, Role, error) {
	runes := []rune(content)
	if len(runes) == 0 {
		return KindEmpty, Continuation, nil
	}

	l1 := runes[0]
	if l1 == '#' {
		return KindTitle, NodeStart, nil
	}

	if len(runes) < 3 {
		switch l1 {
		case '-':
			return KindEmpty, NodeStart, nil
		case ' ':
			return KindEmpty, Continuation, nil
		}
		return 0, 0, &ClassificationError{Line: content}
	}

	switch l2 := runes[2]; l2 {
	case ' ':
		return KindText, Continuation, nil
	case '>':
		if l1 == '-' {
			return KindQuote, NodeStart, nil
		}
		return KindQuote, Continuation, nil
	case '#':
		// A heading can only open a node; under a continuation it is text.
		switch l1 {
		case '-':
			return KindTitle, NodeStart, nil
		case ' ':
			return KindText, Continuation, nil
		}
		return 0, 0, &ClassificationError{Line: content}
	case '`':
		if nodeFence.MatchString(content) {
			return KindCodeBlockMarker, NodeStart, nil
		}
		if continuationFence.MatchString(content) {
			return KindCodeBlockMarker, Continuation, nil
		}
		// Inline code at the start of a line.
		switch l1 {
		case '-':
			return KindList, NodeStart, nil
		case ' ':
			return KindText, Continuation, nil
		}
		return 0, 0, &ClassificationError{Line: content}
	}

	if l1 == '-' {
		return KindList, NodeStart, nil
	}
	return KindText, Continuation, nil
}

// Parse splits and classifies every line of a document. It stops at the
// first unclassifiable line and returns its ClassificationError with the
// line number filled in.
func Parse(lines []string) ([]ClassifiedLine, error) {
	out := make([]ClassifiedLine, 0, len(lines))
	for i, l := range lines {
		raw := SplitLine(l)
		kind, role, err := Classify(raw.Content)
		if err != nil {
			return nil, &ClassificationError{Number: i + 1, Line: raw.Text}
		}
		out = append(out, ClassifiedLine{
			Content: raw.Content,
			Indent:  raw.Indent,
			Kind:    kind,
			Role:    role,
		})
	}
	return out, nil
}
