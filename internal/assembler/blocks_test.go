// File path: internal/assembler/blocks_test.go
package assembler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTableBlock(t *testing.T) {
	body := "Intro line.\n| Name | Type |\n| id | int |\n| label | string |\nOutro line."
	blocks := Parse(body)
	require.Len(t, blocks, 3)

	require.Equal(t, Paragraph{Text: "Intro line."}, blocks[0])

	table, ok := blocks[1].(Table)
	require.True(t, ok, "expected table block, got %#v", blocks[1])
	require.Equal(t, []string{"Name", "Type"}, table.Columns)
	require.Equal(t, [][]string{{"id", "int"}, {"label", "string"}}, table.Rows)

	require.Equal(t, Paragraph{Text: "Outro line."}, blocks[2])
}

func TestParseLoneDelimiterLineStaysText(t *testing.T) {
	blocks := Parse("plain text\nkey | value\nmore plain text")
	require.Len(t, blocks, 3)
	for _, b := range blocks {
		_, isTable := b.(Table)
		require.False(t, isTable, "no table expected in %#v", blocks)
	}
}

func TestParseRaggedTableDemotedToParagraph(t *testing.T) {
	body := "| A | B |\n| only-one |"
	blocks := Parse(body)
	require.Len(t, blocks, 1)
	para, ok := blocks[0].(Paragraph)
	require.True(t, ok, "ragged table must fall back to text, got %#v", blocks[0])
	require.Contains(t, para.Text, "only-one")
}

func TestParseTableWithoutLeadingPipeDemoted(t *testing.T) {
	blocks := Parse("Name | Type\nid | int")
	require.Len(t, blocks, 1)
	_, ok := blocks[0].(Paragraph)
	require.True(t, ok, "header must open with a delimiter for promotion, got %#v", blocks[0])
}

func TestParseSubHeadings(t *testing.T) {
	blocks := Parse("3.1 Overview\n4.2. Technical Architecture\n5 Not a subheading\nregular prose")
	require.Len(t, blocks, 4)
	require.Equal(t, SubHeading{Text: "3.1 Overview"}, blocks[0])
	require.Equal(t, SubHeading{Text: "4.2. Technical Architecture"}, blocks[1])
	require.Equal(t, Paragraph{Text: "5 Not a subheading"}, blocks[2])
	require.Equal(t, Paragraph{Text: "regular prose"}, blocks[3])
}

func TestParseSkipsBlankLines(t *testing.T) {
	blocks := Parse("first\n\n\nsecond")
	require.Equal(t, []Block{Paragraph{Text: "first"}, Paragraph{Text: "second"}}, blocks)
}

func TestParseEmptyBody(t *testing.T) {
	require.Nil(t, Parse("   \n  "))
}
