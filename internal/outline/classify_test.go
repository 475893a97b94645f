// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantKind LineKind
		wantRole Role
	}{
		{"bare heading", "# Title", KindTitle, NodeStart},
		{"bulleted heading", "- ## Section", KindTitle, NodeStart},
		{"heading-like continuation", "  # not a heading", KindText, Continuation},
		{"empty bullet", "-", KindEmpty, NodeStart},
		{"empty bullet with space", "- ", KindEmpty, NodeStart},
		{"empty continuation", "  ", KindEmpty, Continuation},
		{"blank line", "", KindEmpty, Continuation},
		{"multi-line text", "  wrapped text", KindText, Continuation},
		{"quote node", "- > quoted", KindQuote, NodeStart},
		{"quote continuation", "  > more quote", KindQuote, Continuation},
		{"fence node", "- ```go", KindCodeBlockMarker, NodeStart},
		{"fence continuation", "  ```", KindCodeBlockMarker, Continuation},
		{"inline code bullet", "- `x` is a var", KindList, NodeStart},
		{"inline code continuation", " x`y", KindText, Continuation},
		{"list item", "- item", KindList, NodeStart},
		{"task item", "- TODO buy milk", KindList, NodeStart},
		{"property line", "collapsed:: true", KindText, Continuation},
		{"non-ascii text", "éàü", KindText, Continuation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, role, err := Classify(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantRole, role)
		})
	}
}

func TestClassify_Errors(t *testing.T) {
	for _, content := range []string{"x", "ab", "a #b", "ab`c"} {
		t.Run(content, func(t *testing.T) {
			_, _, err := Classify(content)
			var cerr *ClassificationError
			require.True(t, errors.As(err, &cerr), "want ClassificationError, got %v", err)
			assert.Equal(t, content, cerr.Line)
		})
	}
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		raw         string
		wantIndent  int
		wantContent string
	}{
		{"- A\n", 0, "- A"},
		{"\t\t- C\n", 2, "- C"},
		{"\t  wrapped\r\n", 1, "  wrapped"},
		{"\t", 1, ""},
	}
	for _, tt := range tests {
		got := SplitLine(tt.raw)
		assert.Equal(t, tt.wantIndent, got.Indent, "indent of %q", tt.raw)
		assert.Equal(t, tt.wantContent, got.Content, "content of %q", tt.raw)
	}
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{"- A\n", "- B"}, SplitLines("- A\n- B"))
	assert.Equal(t, []string{"- A\n", "\t- B\n"}, SplitLines("- A\n\t- B\n"))
}

func TestParse(t *testing.T) {
	lines, err := Parse([]string{"- A\n", "\t- B\n", "\t  more\n"})
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, ClassifiedLine{Content: "- A", Indent: 0, Kind: KindList, Role: NodeStart}, lines[0])
	assert.Equal(t, ClassifiedLine{Content: "- B", Indent: 1, Kind: KindList, Role: NodeStart}, lines[1])
	assert.Equal(t, ClassifiedLine{Content: "  more", Indent: 1, Kind: KindText, Role: Continuation}, lines[2])
}

func TestParse_ReportsLineNumber(t *testing.T) {
	_, err := Parse([]string{"- ok\n", "\tzz\n"})
	var cerr *ClassificationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 2, cerr.Number)
	assert.Equal(t, "\tzz", cerr.Line)
	assert.Contains(t, err.Error(), "line 2")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "code-block-marker", KindCodeBlockMarker.String())
	assert.Equal(t, "unknown", LineKind(0).String())
	assert.Equal(t, "continuation", Continuation.String())
}
