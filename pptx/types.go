package pptx

import (
	"encoding/xml"
	"strings"
)

// presentationXML represents the ppt/presentation.xml file structure.
type presentationXML struct {
	XMLName     xml.Name        `xml:"presentation"`
	SlideIdList *slideIdListXML `xml:"sldIdLst"`
}

type slideIdListXML struct {
	SlideId []slideIdXML `xml:"sldId"`
}

type slideIdXML struct {
	ID  string `xml:"id,attr"`
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

// slideXML represents a ppt/slides/slide*.xml file structure.
type slideXML struct {
	XMLName xml.Name `xml:"sld"`
	CSld    cSldXML  `xml:"cSld"`
}

type cSldXML struct {
	SpTree spTreeXML `xml:"spTree"`
}

// spTreeXML represents the shape tree. Shapes are kept in document order,
// which encoding/xml field tags cannot express across element types.
type spTreeXML struct {
	Shapes []shapeXML
}

// shapeXML is one child of the shape tree.
type shapeXML struct {
	Kind ShapeKind
	Sp   *spXML
}

// UnmarshalXML records the tree's shapes in order. Only p:sp elements are
// decoded; other shape kinds are recorded without their content.
func (t *spTreeXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			kind := ShapeKind(el.Name.Local)
			switch kind {
			case KindShape:
				sp := &spXML{}
				if err := d.DecodeElement(sp, &el); err != nil {
					return err
				}
				t.Shapes = append(t.Shapes, shapeXML{Kind: kind, Sp: sp})
				continue
			case KindGroup, KindPicture, KindGraphicFrame, KindConnector:
				t.Shapes = append(t.Shapes, shapeXML{Kind: kind})
			}
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// spXML represents a shape element.
type spXML struct {
	NvSpPr nvSpPrXML  `xml:"nvSpPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type nvSpPrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
	NvPr  nvPrXML  `xml:"nvPr"`
}

type cNvPrXML struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type nvPrXML struct {
	Ph *phXML `xml:"ph"`
}

type phXML struct {
	Type string `xml:"type,attr"` // title, body, subTitle, ctrTitle, etc.
}

// txBodyXML represents text body content.
type txBodyXML struct {
	P []pXML `xml:"p"`
}

// pXML represents a paragraph flattened to its text.
type pXML struct {
	Text string
}

// UnmarshalXML flattens runs, fields and line breaks in order. Line breaks
// become vertical tabs.
func (p *pXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "r", "fld":
				var run textRunXML
				if err := d.DecodeElement(&run, &el); err != nil {
					return err
				}
				b.WriteString(run.T)
				continue
			case "br":
				b.WriteByte('\v')
			}
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			p.Text = b.String()
			return nil
		}
	}
}

// textRunXML is a run or field (<a:r>, <a:fld>).
type textRunXML struct {
	T string `xml:"t"`
}

// relationshipsXML represents .rels files.
type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}
