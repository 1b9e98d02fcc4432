package services

import (
	"regexp"
	"strconv"
	"strings"
)

// The evaluation reply is free text that should follow a labeled template but
// comes from a generative model, so labels may be missing, reordered, or
// formatted differently between calls. Extraction is therefore table-driven:
// each field names its start label, an optional end label, a value kind, and
// a capture mode. Adding or renaming a template field is a data change.

type ValueKind int

const (
	KindText ValueKind = iota
	KindNumber
)

type ExtractMode int

const (
	// ModeLine captures the remainder of the label's own line.
	ModeLine ExtractMode = iota
	// ModeSpan captures everything between the start label and the next
	// occurrence of the end label, or to the end of the text.
	ModeSpan
)

type FieldSpec struct {
	Name       string
	StartLabel string
	EndLabel   string // ModeSpan only; empty means "to end of text"
	Kind       ValueKind
	Mode       ExtractMode
}

// MissingValue is the display form of an absent field. Absence is tracked by
// FieldValue.Found, not by comparing against this string, so a reply that
// legitimately contains "N/A" stays distinguishable.
const MissingValue = "N/A"

// FieldValue is either a parsed value or an explicit absence marker.
type FieldValue struct {
	Kind   ValueKind
	Found  bool
	Text   string
	Number int
}

func (v FieldValue) Display() string {
	if !v.Found {
		return MissingValue
	}
	if v.Kind == KindNumber {
		return strconv.Itoa(v.Number)
	}
	return v.Text
}

// leading separators between a label and its value: whitespace, colon,
// dashes, and markdown emphasis
const labelSeparators = " \t:*-–—"

var digitRun = regexp.MustCompile(`\d+`)

// ExtractField parses one field out of the reply text. A missing label is
// not an error: the result simply reports Found=false.
func ExtractField(text string, spec FieldSpec) FieldValue {
	start, ok := findLabel(text, spec.StartLabel)
	if !ok {
		return FieldValue{Kind: spec.Kind}
	}

	var captured string
	switch spec.Mode {
	case ModeSpan:
		captured = text[start:]
		if spec.EndLabel != "" {
			if end, ok := findLabelStart(captured, spec.EndLabel); ok {
				captured = captured[:end]
			}
		}
	default:
		captured = text[start:]
		if nl := strings.IndexByte(captured, '\n'); nl != -1 {
			captured = captured[:nl]
		}
	}

	captured = strings.TrimLeft(captured, labelSeparators)
	captured = strings.TrimSpace(captured)

	if spec.Kind == KindNumber {
		return parseNumber(captured)
	}

	return FieldValue{Kind: KindText, Found: true, Text: captured}
}

// ExtractFields runs the whole template against one reply.
func ExtractFields(text string, template []FieldSpec) map[string]FieldValue {
	values := make(map[string]FieldValue, len(template))
	for _, spec := range template {
		values[spec.Name] = ExtractField(text, spec)
	}
	return values
}

// parseNumber takes the first run of decimal digits on the captured line.
// The capture is cut at the first newline even for span fields, so a digit
// buried in a later paragraph can never masquerade as the field's value.
// No digits means absent, never zero: "Score: 0" is a real zero.
func parseNumber(captured string) FieldValue {
	if nl := strings.IndexByte(captured, '\n'); nl != -1 {
		captured = captured[:nl]
	}

	digits := digitRun.FindString(captured)
	if digits == "" {
		return FieldValue{Kind: KindNumber}
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return FieldValue{Kind: KindNumber}
	}

	return FieldValue{Kind: KindNumber, Found: true, Number: n}
}

// labelPattern matches the label case-insensitively in place. Matching on
// the original text instead of a lowercased copy keeps the offsets valid for
// slicing: ToLower can change the byte length of runes like İ or the Kelvin
// sign, which would shift every index after them.
func labelPattern(label string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(label))
}

// findLabel returns the offset just past the first case-insensitive
// occurrence of label.
func findLabel(text, label string) (int, bool) {
	if label == "" {
		return 0, false
	}
	loc := labelPattern(label).FindStringIndex(text)
	if loc == nil {
		return 0, false
	}
	return loc[1], true
}

func findLabelStart(text, label string) (int, bool) {
	if label == "" {
		return 0, false
	}
	loc := labelPattern(label).FindStringIndex(text)
	if loc == nil {
		return 0, false
	}
	return loc[0], true
}

// Field names used by the default template. Handlers and the exporter refer
// to these instead of repeating string literals.
const (
	FieldScore      = "Score"
	FieldMatch      = "Match %"
	FieldExperience = "Experience"
	FieldStrengths  = "Strengths"
	FieldRedFlags   = "Red Flags"
	FieldVerdict    = "Verdict"
	FieldHire       = "Hire"
	FieldSummary    = "Summary"
)

// DefaultReportTemplate describes the reply format requested by the
// evaluation prompt. Order matters only for presentation.
func DefaultReportTemplate() []FieldSpec {
	return []FieldSpec{
		{Name: FieldScore, StartLabel: "Score", Kind: KindNumber, Mode: ModeLine},
		{Name: FieldMatch, StartLabel: "Skill Match", Kind: KindNumber, Mode: ModeLine},
		{Name: FieldExperience, StartLabel: "Years of Experience", Kind: KindText, Mode: ModeLine},
		{Name: FieldStrengths, StartLabel: "Top Strengths", EndLabel: "Red Flags", Kind: KindText, Mode: ModeSpan},
		{Name: FieldRedFlags, StartLabel: "Red Flags", EndLabel: "Final Verdict", Kind: KindText, Mode: ModeSpan},
		{Name: FieldVerdict, StartLabel: "Final Verdict", Kind: KindText, Mode: ModeLine},
		{Name: FieldHire, StartLabel: "hire recommendation", Kind: KindText, Mode: ModeLine},
		{Name: FieldSummary, StartLabel: "Summary", Kind: KindText, Mode: ModeSpan},
	}
}
