package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	input := "# Title\n\n## Section\nSome paragraph text.\n   \n# Another"
	lines := Classify(input)

	assert.Len(t, lines, 6)
	assert.Equal(t, Line{Kind: Heading1, Text: "Title"}, lines[0])
	assert.Equal(t, Blank, lines[1].Kind)
	assert.Equal(t, Line{Kind: Heading2, Text: "Section"}, lines[2])
	assert.Equal(t, Line{Kind: Paragraph, Text: "Some paragraph text."}, lines[3])
	assert.Equal(t, Blank, lines[4].Kind)
	assert.Equal(t, Line{Kind: Heading1, Text: "Another"}, lines[5])
}

func TestClassifyHashWithoutSpaceIsParagraph(t *testing.T) {
	lines := Classify("#NoSpace\n##AlsoNoSpace")
	assert.Equal(t, Paragraph, lines[0].Kind)
	assert.Equal(t, "#NoSpace", lines[0].Text)
	assert.Equal(t, Paragraph, lines[1].Kind)
}

func TestClassifyEmpty(t *testing.T) {
	assert.Empty(t, Classify(""))
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 1, ReadingTime(""))
	assert.Equal(t, 1, ReadingTime("just a few words"))

	// 400 words reads in two minutes at 200 wpm
	assert.Equal(t, 2, ReadingTime(strings.Repeat("word ", 400)))

	// 290 words rounds to one minute, 310 to two
	assert.Equal(t, 1, ReadingTime(strings.Repeat("word ", 290)))
	assert.Equal(t, 2, ReadingTime(strings.Repeat("word ", 310)))
}
