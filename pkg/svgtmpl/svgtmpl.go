// Package svgtmpl fills the text fields of a hand-designed SVG sharepic
// template. This is the legacy, non-raster output path: the template
// carries one text element per field, identified by id attributes of the
// form TEAM17, DATE17, TIME17 and CALENDAR_WEEK, where the numeric suffix
// is the division's age class.
package svgtmpl

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"

	apperrors "github.com/young-islanders/sharepic/pkg/errors"
)

// Field names understood by the template.
const (
	FieldTeam = "TEAM"
	FieldDate = "DATE"
	FieldTime = "TIME"
)

// Template is a loaded SVG document with addressable text fields.
type Template struct {
	doc *etree.Document
}

// Load reads and parses the template file at path.
func Load(path string) (*Template, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeAssetLoad, err, "read svg template %s", path)
	}
	return &Template{doc: doc}, nil
}

// Parse reads a template from r.
func Parse(r io.Reader) (*Template, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeAssetLoad, err, "parse svg template")
	}
	return &Template{doc: doc}, nil
}

// SetField writes value into the text element identified by field+age
// (e.g. SetField(FieldTeam, "17", "ESC Kempten")). The text lands in the
// element's first tspan child when present, else in the element itself.
// Exactly one matching element must exist.
func (t *Template) SetField(field, age, value string) error {
	el, err := t.findField(field + age)
	if err != nil {
		return err
	}
	if spans := el.ChildElements(); len(spans) > 0 {
		spans[0].SetText(value)
	} else {
		el.SetText(value)
	}
	return nil
}

// ClearFields blanks the TEAM, DATE and TIME fields for one age class,
// used for divisions without a game in the active week.
func (t *Template) ClearFields(age string) error {
	for _, field := range []string{FieldTeam, FieldDate, FieldTime} {
		if err := t.SetField(field, age, ""); err != nil {
			return err
		}
	}
	return nil
}

// SetCalendarWeek writes the headline week field.
func (t *Template) SetCalendarWeek(week int) error {
	return t.SetField("CALENDAR_WEEK", "", fmt.Sprintf("SPIELVORSCHAU KW %d", week))
}

// SetOpponent writes the opponent for one age class, appending the venue
// marker ("[H]" or "[A]") when given. The template stores the opponent in
// its TEAM field.
func (t *Template) SetOpponent(age, opponent, venue string) error {
	value := opponent
	if venue != "" {
		value = fmt.Sprintf("%s [%s]", opponent, venue)
	}
	return t.SetField(FieldTeam, age, value)
}

// WriteTo serializes the modified document.
func (t *Template) WriteTo(w io.Writer) error {
	if _, err := t.doc.WriteTo(w); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "write svg template")
	}
	return nil
}

// WriteFile serializes the modified document to path.
func (t *Template) WriteFile(path string) error {
	if err := t.doc.WriteToFile(path); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "write svg template %s", path)
	}
	return nil
}

func (t *Template) findField(id string) (*etree.Element, error) {
	var matches []*etree.Element
	for _, el := range t.doc.FindElements("//text") {
		if el.SelectAttrValue("id", "") == id {
			matches = append(matches, el)
		}
	}
	switch len(matches) {
	case 0:
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "template has no text field %q", id)
	case 1:
		return matches[0], nil
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "template has %d text fields %q, want 1", len(matches), id)
	}
}

// FieldValue returns the current text of a field, mainly for tests and
// diagnostics.
func (t *Template) FieldValue(field, age string) (string, error) {
	el, err := t.findField(field + age)
	if err != nil {
		return "", err
	}
	if spans := el.ChildElements(); len(spans) > 0 {
		return strings.TrimSpace(spans[0].Text()), nil
	}
	return strings.TrimSpace(el.Text()), nil
}
