package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// A .docx file is an OOXML zip package. Only three entries are needed for a
// plain text document: the content-type manifest, the package rels, and the
// document body itself.

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const docxDocumentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>`

const docxDocumentFooter = `</w:body>
</w:document>`

// docxParagraph renders one paragraph: Times New Roman 12pt (24 half-points),
// 200 twentieths spacing after, 360 line spacing, left aligned.
func docxParagraph(text string) string {
	var esc bytes.Buffer
	xml.EscapeText(&esc, []byte(text))
	return `<w:p><w:pPr><w:spacing w:after="200" w:line="360" w:lineRule="auto"/><w:jc w:val="left"/></w:pPr>` +
		`<w:r><w:rPr><w:rFonts w:ascii="Times New Roman" w:hAnsi="Times New Roman"/><w:sz w:val="24"/></w:rPr>` +
		`<w:t xml:space="preserve">` + esc.String() + `</w:t></w:r></w:p>`
}

// WriteDOCX renders the letter content as a Word document. Markup is
// stripped first; blank lines separate paragraphs.
func WriteDOCX(w io.Writer, content string) error {
	var body strings.Builder
	body.WriteString(docxDocumentHeader)
	for _, para := range strings.Split(HTMLToPlainText(content), "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		// Single newlines inside a paragraph collapse to spaces, same as
		// rendered HTML would.
		para = strings.Join(strings.Fields(para), " ")
		body.WriteString(docxParagraph(para))
	}
	body.WriteString(docxDocumentFooter)

	zw := zip.NewWriter(w)
	entries := []struct {
		name string
		data string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", body.String()},
	}
	for _, e := range entries {
		f, err := zw.Create(e.name)
		if err != nil {
			return fmt.Errorf("create %s: %w", e.name, err)
		}
		if _, err := f.Write([]byte(e.data)); err != nil {
			return fmt.Errorf("write %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize docx: %w", err)
	}
	return nil
}
