// File path: internal/docx/writer.go
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/specdraft/specdraft/internal/assembler"
	"github.com/specdraft/specdraft/internal/common"
)

// Section is one finished UDD section handed to the renderer: the title that
// becomes a navigable Heading 1, and its typed content blocks.
type Section struct {
	Title  string
	Blocks []assembler.Block
}

// Renderer turns the ordered sections into a binary document.
type Renderer interface {
	Render(title string, sections []Section) ([]byte, error)
}

const attribution = "Document generated by the specdraft UDD assistant."

// rightTabStop is the dot-leader tab position for index entries, in twips.
const rightTabStop = 6 * 1440

// Writer renders an OOXML (.docx) package. The document carries a TOC field
// over Heading 1 only, a manual index with PAGEREF placeholders against
// per-section bookmarks, and outline-suppressed sub-headings, so Word
// resolves page numbers on open while the outline stays limited to the
// top-level UDD sections.
type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) Render(title string, sections []Section) ([]byte, error) {
	logger := common.Logger()
	logger.Info("docx: rendering document", "title", title, "sections", len(sections))

	var body strings.Builder
	w.writeFrontMatter(&body, title, sections)
	for i, sec := range sections {
		w.writeSection(&body, i, sec)
	}
	w.writeParagraph(&body, "", attribution)
	body.WriteString(`<w:sectPr/>`)

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() +
		`</w:body></w:document>`

	return packParts(map[string]string{
		"[Content_Types].xml":          contentTypesXML,
		"_rels/.rels":                  rootRelsXML,
		"word/_rels/document.xml.rels": documentRelsXML,
		"word/styles.xml":              stylesXML,
		"word/document.xml":            document,
	})
}

// writeFrontMatter emits the title, the Index heading, the TOC field and the
// manual index entries with dot-leader page references.
func (w *Writer) writeFrontMatter(b *strings.Builder, title string, sections []Section) {
	w.writeParagraph(b, "Title", title)
	w.writeParagraph(b, "Heading1", "Index")

	// TOC over Heading 1 only; Word refreshes it into real entries.
	b.WriteString(`<w:p><w:r><w:fldChar w:fldCharType="begin"/></w:r>`)
	b.WriteString(`<w:r><w:instrText xml:space="preserve">TOC \o "1" \h \z \u</w:instrText></w:r>`)
	b.WriteString(`<w:r><w:fldChar w:fldCharType="separate"/></w:r>`)
	b.WriteString(`<w:r><w:fldChar w:fldCharType="end"/></w:r></w:p>`)

	for i, sec := range sections {
		b.WriteString(`<w:p><w:pPr><w:tabs>`)
		fmt.Fprintf(b, `<w:tab w:val="right" w:leader="dot" w:pos="%d"/>`, rightTabStop)
		b.WriteString(`</w:tabs></w:pPr>`)
		fmt.Fprintf(b, `<w:r><w:t xml:space="preserve">%d. %s</w:t></w:r>`, i+1, esc(sec.Title))
		b.WriteString(`<w:r><w:tab/></w:r>`)
		writePageRef(b, bookmarkName(i))
		b.WriteString(`</w:p>`)
	}
}

func (w *Writer) writeSection(b *strings.Builder, index int, sec Section) {
	name := bookmarkName(index)
	b.WriteString(`<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr>`)
	fmt.Fprintf(b, `<w:bookmarkStart w:id="%d" w:name="%s"/>`, index+1, name)
	fmt.Fprintf(b, `<w:r><w:t xml:space="preserve">%d. %s</w:t></w:r>`, index+1, esc(sec.Title))
	fmt.Fprintf(b, `<w:bookmarkEnd w:id="%d"/>`, index+1)
	b.WriteString(`</w:p>`)

	for _, block := range sec.Blocks {
		switch v := block.(type) {
		case assembler.SubHeading:
			w.writeSubHeading(b, v.Text)
		case assembler.Table:
			w.writeTable(b, v)
		case assembler.Paragraph:
			w.writeParagraph(b, "", v.Text)
		}
	}
}

// writeSubHeading renders bold body text pinned to outline level 9 so Word
// never promotes it into the navigation pane or the TOC.
func (w *Writer) writeSubHeading(b *strings.Builder, text string) {
	b.WriteString(`<w:p><w:pPr><w:outlineLvl w:val="9"/></w:pPr>`)
	fmt.Fprintf(b, `<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">%s</w:t></w:r>`, esc(text))
	b.WriteString(`</w:p>`)
}

func (w *Writer) writeParagraph(b *strings.Builder, style string, text string) {
	b.WriteString(`<w:p>`)
	if style != "" {
		fmt.Fprintf(b, `<w:pPr><w:pStyle w:val="%s"/></w:pPr>`, style)
	}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteString(`<w:r><w:br/></w:r>`)
		}
		fmt.Fprintf(b, `<w:r><w:t xml:space="preserve">%s</w:t></w:r>`, esc(line))
	}
	b.WriteString(`</w:p>`)
}

func (w *Writer) writeTable(b *strings.Builder, table assembler.Table) {
	b.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/><w:tblBorders>`)
	for _, edge := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		fmt.Fprintf(b, `<w:%s w:val="single" w:sz="4" w:space="0" w:color="auto"/>`, edge)
	}
	b.WriteString(`</w:tblBorders></w:tblPr>`)

	writeRow := func(cells []string, header bool) {
		b.WriteString(`<w:tr>`)
		for _, cell := range cells {
			b.WriteString(`<w:tc><w:p><w:r>`)
			if header {
				b.WriteString(`<w:rPr><w:b/></w:rPr>`)
			}
			fmt.Fprintf(b, `<w:t xml:space="preserve">%s</w:t>`, esc(cell))
			b.WriteString(`</w:r></w:p></w:tc>`)
		}
		b.WriteString(`</w:tr>`)
	}
	writeRow(table.Columns, true)
	for _, row := range table.Rows {
		writeRow(row, false)
	}
	b.WriteString(`</w:tbl>`)
}

// writePageRef emits a PAGEREF field with a "1" placeholder result; the real
// page number resolves when the document's fields update.
func writePageRef(b *strings.Builder, bookmark string) {
	b.WriteString(`<w:r><w:fldChar w:fldCharType="begin"/></w:r>`)
	fmt.Fprintf(b, `<w:r><w:instrText xml:space="preserve">PAGEREF %s \h</w:instrText></w:r>`, bookmark)
	b.WriteString(`<w:r><w:fldChar w:fldCharType="separate"/></w:r>`)
	b.WriteString(`<w:r><w:t>1</w:t></w:r>`)
	b.WriteString(`<w:r><w:fldChar w:fldCharType="end"/></w:r>`)
}

func bookmarkName(index int) string {
	return fmt.Sprintf("sec_%d", index+1)
}

func packParts(parts map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)
	// [Content_Types].xml must be present; order of the rest is free, but a
	// stable order keeps output byte-reproducible.
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/_rels/document.xml.rels", "word/styles.xml", "word/document.xml"} {
		entry, err := zipWriter.Create(name)
		if err != nil {
			return nil, fmt.Errorf("create docx part %s: %w", name, err)
		}
		if _, err := entry.Write([]byte(parts[name])); err != nil {
			return nil, fmt.Errorf("write docx part %s: %w", name, err)
		}
	}
	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("finalize docx package: %w", err)
	}
	return buf.Bytes(), nil
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func esc(s string) string {
	return xmlEscaper.Replace(s)
}
