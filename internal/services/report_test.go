package services

import (
	"strings"
	"testing"
	"unicode/utf8"
)

const sampleReply = `Here is my evaluation:

1. Score: 87
2. Skill Match %: 72
3. Years of Experience: 6 years
4. Top Strengths:
- Solid Go background
- Led a platform migration
5. Red Flags:
- Short tenure at last role
6. Final Verdict: Strong Fit
7. One-line hire recommendation: Hire for the backend team.
8. Summary: BSc in CS, AWS certified, comfortable with Docker and Postgres.`

func TestExtractFieldsDefaultTemplate(t *testing.T) {
	values := ExtractFields(sampleReply, DefaultReportTemplate())

	score := values[FieldScore]
	if !score.Found || score.Number != 87 {
		t.Fatalf("expected score 87, got %+v", score)
	}

	match := values[FieldMatch]
	if !match.Found || match.Number != 72 {
		t.Fatalf("expected match 72, got %+v", match)
	}

	strengths := values[FieldStrengths]
	if !strengths.Found {
		t.Fatalf("expected strengths to be found")
	}
	if strings.Contains(strengths.Text, "Short tenure") {
		t.Fatalf("strengths span leaked into red flags: %q", strengths.Text)
	}

	verdict := values[FieldVerdict]
	if verdict.Display() != "Strong Fit" {
		t.Fatalf("expected verdict %q, got %q", "Strong Fit", verdict.Display())
	}

	summary := values[FieldSummary]
	if !strings.Contains(summary.Text, "AWS certified") {
		t.Fatalf("expected summary to run to end of text, got %q", summary.Text)
	}
}

func TestExtractFieldSentinelDistinction(t *testing.T) {
	spec := FieldSpec{Name: "Score", StartLabel: "Score", Kind: KindNumber, Mode: ModeLine}

	zero := ExtractField("Score: 0", spec)
	if !zero.Found {
		t.Fatalf("a legitimate zero must not be reported as absent")
	}
	if zero.Number != 0 {
		t.Fatalf("expected 0, got %d", zero.Number)
	}

	missing := ExtractField("no relevant labels here", spec)
	if missing.Found {
		t.Fatalf("expected absent value, got %+v", missing)
	}
	if missing.Display() != MissingValue {
		t.Fatalf("expected %q display, got %q", MissingValue, missing.Display())
	}
}

func TestExtractFieldSpan(t *testing.T) {
	text := "Top 3 Strengths:\nA\nB\nRed Flags\nC"
	spec := FieldSpec{
		Name:       "Strengths",
		StartLabel: "Top 3 Strengths:",
		EndLabel:   "Red Flags",
		Kind:       KindText,
		Mode:       ModeSpan,
	}

	got := ExtractField(text, spec)
	if !got.Found {
		t.Fatalf("expected span to be found")
	}
	if got.Text != "A\nB" {
		t.Fatalf("expected %q, got %q", "A\nB", got.Text)
	}
}

func TestExtractFieldSpanWithoutEndLabel(t *testing.T) {
	text := "Summary: first line\nsecond line"
	spec := FieldSpec{Name: "Summary", StartLabel: "Summary", Kind: KindText, Mode: ModeSpan}

	got := ExtractField(text, spec)
	if got.Text != "first line\nsecond line" {
		t.Fatalf("expected span to run to end of text, got %q", got.Text)
	}
}

func TestExtractFieldCaseInsensitive(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		label string
	}{
		{"lower text upper label", "score: 42", "Score:"},
		{"upper text lower label", "Score: 42", "score:"},
		{"mixed case", "sCoRe: 42", "SCORE:"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := FieldSpec{Name: "Score", StartLabel: tc.label, Kind: KindNumber, Mode: ModeLine}
			got := ExtractField(tc.text, spec)
			if !got.Found || got.Number != 42 {
				t.Fatalf("expected 42, got %+v", got)
			}
		})
	}
}

func TestExtractFieldAfterMultibyteRunes(t *testing.T) {
	// Runes like İ change byte length under case mapping. Labels after them
	// must still be located at their real offsets, with no label fragments
	// glued to the value and no mid-rune cuts.
	text := "Aday İstanbul'dan geldi.\n" +
		"Top Strengths:\n- İyi İletişim İle çalışır\n" +
		"Red Flags: None\n" +
		"Final Verdict: Strong Fit"

	verdict := ExtractField(text, FieldSpec{
		Name: "Verdict", StartLabel: "Final Verdict", Kind: KindText, Mode: ModeLine,
	})
	if verdict.Text != "Strong Fit" {
		t.Fatalf("expected %q, got %q", "Strong Fit", verdict.Text)
	}

	strengths := ExtractField(text, FieldSpec{
		Name: "Strengths", StartLabel: "Top Strengths", EndLabel: "Red Flags",
		Kind: KindText, Mode: ModeSpan,
	})
	if strengths.Text != "- İyi İletişim İle çalışır" {
		t.Fatalf("unexpected strengths span: %q", strengths.Text)
	}
	if !utf8.ValidString(strengths.Text) {
		t.Fatalf("span cut produced invalid UTF-8: %q", strengths.Text)
	}
}

func TestExtractFieldSeparatorTolerance(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"colon", "Final Verdict: Strong Fit", "Strong Fit"},
		{"dash", "Final Verdict - Strong Fit", "Strong Fit"},
		{"extra whitespace", "Final Verdict:    Strong Fit", "Strong Fit"},
		{"markdown bold", "**Final Verdict:** Strong Fit", "Strong Fit"},
	}

	spec := FieldSpec{Name: "Verdict", StartLabel: "Final Verdict", Kind: KindText, Mode: ModeLine}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractField(tc.text, spec)
			if got.Text != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got.Text)
			}
		})
	}
}

func TestExtractFieldNumberStaysOnLabelLine(t *testing.T) {
	// A digit in a later paragraph must not be taken as the field's value,
	// even when the field is captured as a span.
	text := "Skill Match %: unclear\nThe candidate has 5 years of Python."
	spec := FieldSpec{Name: "Match %", StartLabel: "Skill Match", Kind: KindNumber, Mode: ModeSpan}

	got := ExtractField(text, spec)
	if got.Found {
		t.Fatalf("expected absent value when the label line has no digits, got %d", got.Number)
	}
}

func TestExtractFieldNumberFirstDigitRunOnLine(t *testing.T) {
	spec := FieldSpec{Name: "Score", StartLabel: "Score", Kind: KindNumber, Mode: ModeLine}

	got := ExtractField("Score: 87 out of 100", spec)
	if !got.Found || got.Number != 87 {
		t.Fatalf("expected first digit run 87, got %+v", got)
	}
}

func TestFieldValueDisplay(t *testing.T) {
	number := FieldValue{Kind: KindNumber, Found: true, Number: 7}
	if number.Display() != "7" {
		t.Fatalf("expected %q, got %q", "7", number.Display())
	}

	// A reply that legitimately contains the sentinel text is still "found"
	literal := FieldValue{Kind: KindText, Found: true, Text: MissingValue}
	if literal.Display() != MissingValue || !literal.Found {
		t.Fatalf("a literal N/A value must stay distinguishable from absence")
	}
}

func TestExtractFieldsIdempotent(t *testing.T) {
	first := ExtractFields(sampleReply, DefaultReportTemplate())
	second := ExtractFields(sampleReply, DefaultReportTemplate())

	for name, v := range first {
		if second[name] != v {
			t.Fatalf("field %q differs between runs: %+v vs %+v", name, v, second[name])
		}
	}
}
