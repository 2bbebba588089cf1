package docx

import (
	"encoding/xml"
	"strings"
)

// documentXML represents the structure of word/document.xml
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

// bodyXML represents the document body. Only top-level paragraphs are
// collected; table content is ignored.
type bodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

// paragraphXML represents a paragraph element (<w:p>) with its runs in
// document order, including runs nested in hyperlinks and tracked insertions.
type paragraphXML struct {
	Runs []runXML
}

// runContainers are paragraph children whose runs belong to the paragraph.
var runContainers = map[string]bool{
	"hyperlink": true,
	"ins":       true,
	"smartTag":  true,
	"fldSimple": true,
}

// UnmarshalXML collects the paragraph's runs in order.
func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch {
			case el.Name.Local == "r":
				var run runXML
				if err := d.DecodeElement(&run, &el); err != nil {
					return err
				}
				p.Runs = append(p.Runs, run)
			case runContainers[el.Name.Local]:
				depth++
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

// runXML represents a text run (<w:r>) flattened to its text.
type runXML struct {
	Text string
}

// UnmarshalXML flattens the run's text, tab and break children in order.
func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				var s string
				if err := d.DecodeElement(&s, &el); err != nil {
					return err
				}
				b.WriteString(s)
				continue
			case "tab":
				b.WriteByte('\t')
			case "br":
				if attr(el, "type") == "page" {
					b.WriteRune(PageBreak)
				} else {
					b.WriteByte('\n')
				}
			case "cr":
				b.WriteByte('\n')
			}
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			r.Text = b.String()
			return nil
		}
	}
}

// attr returns the value of the attribute with the given local name.
func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
