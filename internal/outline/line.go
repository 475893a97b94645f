// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outline splits Logseq pages into lines and classifies each line's
// syntactic kind and its role inside the outline.
package outline

import "strings"

// LineKind is the syntactic category of one outline line.
type LineKind int

const (
	KindTitle LineKind = iota + 1
	KindList
	KindQuote
	KindCodeBlockMarker
	KindCode
	KindEmpty
	KindText
)

var kindNames = map[LineKind]string{
	KindTitle:           "title",
	KindList:            "list",
	KindQuote:           "quote",
	KindCodeBlockMarker: "code-block-marker",
	KindCode:            "code",
	KindEmpty:           "empty",
	KindText:            "text",
}

func (k LineKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Role tells whether a line opens a new outline node or extends the
// content of the nearest preceding node.
type Role int

const (
	NodeStart Role = iota + 1
	Continuation
)

func (r Role) String() string {
	switch r {
	case NodeStart:
		return "node-start"
	case Continuation:
		return "continuation"
	default:
		return "unknown"
	}
}

// RawLine is one physical input line split into its leading tab count
// and the remaining content.
type RawLine struct {
	// Text is the line as read, without the line terminator.
	Text string

	// Indent is the number of leading tab characters.
	Indent int

	// Content is Text with the leading tabs removed.
	Content string
}

// SplitLine builds a RawLine from a physical line. A trailing "\n" or
// "\r\n" is dropped.
func SplitLine(raw string) RawLine {
	text := strings.TrimSuffix(raw, "\n")
	text = strings.TrimSuffix(text, "\r")

	indent := 0
	for indent < len(text) && text[indent] == '\t' {
		indent++
	}
	return RawLine{
		Text:    text,
		Indent:  indent,
		Content: text[indent:],
	}
}

// ClassifiedLine is a RawLine tagged with its kind and role.
type ClassifiedLine struct {
	Content string
	Indent  int
	Kind    LineKind
	Role    Role
}

// SplitLines cuts a document into physical lines, keeping the behaviour
// of a line-oriented reader: a final terminator does not produce an
// extra empty line.
func SplitLines(doc string) []string {
	if doc == "" {
		return nil
	}
	lines := strings.SplitAfter(doc, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
