package report

import (
	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

type section struct {
	heading string
	lines   []string
}

// writeDocx renders a title and a list of headed sections to a styled docx file.
func writeDocx(title string, sections []section, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)

	for _, sec := range sections {
		doc.AddParagraph("")
		addStyledRun(doc.AddParagraph(""), sec.heading, true, headingSize(2))
		for _, line := range sec.lines {
			addStyledRun(doc.AddParagraph(""), line, false, fontSize)
		}
	}

	return doc.SaveTo(outputPath)
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
