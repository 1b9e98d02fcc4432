package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"airhr/resume-analyzer/internal/config"
)

type stubOCREngine struct {
	text  string
	err   error
	calls int
	pages []int
}

func (s *stubOCREngine) RecognizePage(_ context.Context, _ string, pageNum int) (string, error) {
	s.calls++
	s.pages = append(s.pages, pageNum)
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func TestResolvePageTextKeepsNativeText(t *testing.T) {
	stub := &stubOCREngine{text: "should not be used"}
	d := &documentExtractor{ocr: stub}

	got := d.resolvePageText(context.Background(), "native layer text", "cv.pdf", 1)
	if got != "native layer text" {
		t.Fatalf("expected native text, got %q", got)
	}
	if stub.calls != 0 {
		t.Fatalf("OCR must not run for a page with native text")
	}
}

func TestResolvePageTextFallsBackToOCR(t *testing.T) {
	cases := []struct {
		name   string
		native string
	}{
		{"empty", ""},
		{"whitespace only", "  \n\t  "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubOCREngine{text: "recognized text"}
			d := &documentExtractor{ocr: stub}

			got := d.resolvePageText(context.Background(), tc.native, "cv.pdf", 3)
			if got != "recognized text" {
				t.Fatalf("expected OCR text, got %q", got)
			}
			if stub.calls != 1 || stub.pages[0] != 3 {
				t.Fatalf("expected one OCR call for page 3, got calls=%d pages=%v", stub.calls, stub.pages)
			}
		})
	}
}

func TestResolvePageTextOCRFailureDegradesToEmpty(t *testing.T) {
	stub := &stubOCREngine{err: errors.New("engine unavailable")}
	d := &documentExtractor{ocr: stub}

	got := d.resolvePageText(context.Background(), "", "cv.pdf", 1)
	if got != "" {
		t.Fatalf("expected empty page text on OCR failure, got %q", got)
	}
}

func TestExtractUnreadableDocumentYieldsPlaceholder(t *testing.T) {
	d := NewDocumentExtractor(&stubOCREngine{})

	got := d.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	if !strings.HasPrefix(got, "[ERROR reading PDF]") {
		t.Fatalf("expected diagnostic placeholder, got %q", got)
	}

	// a corrupt file is handled the same way
	corrupt := filepath.Join(t.TempDir(), "corrupt.pdf")
	if err := os.WriteFile(corrupt, []byte("not a pdf at all"), 0644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	got = d.Extract(context.Background(), corrupt)
	if !strings.HasPrefix(got, "[ERROR reading PDF]") {
		t.Fatalf("expected diagnostic placeholder for corrupt file, got %q", got)
	}
}

type stubRunner struct {
	calls        [][]string
	ocrText      string
	pdftoppmErr  error
	tesseractErr error
	skipRender   bool
}

func (r *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	r.calls = append(r.calls, append([]string{name}, args...))

	switch name {
	case "pdftoppm":
		if r.pdftoppmErr != nil {
			return nil, []byte("render failed"), r.pdftoppmErr
		}
		if !r.skipRender {
			// pdftoppm writes <prefix>-<page>.png; the prefix is the last arg
			prefix := args[len(args)-1]
			if err := os.WriteFile(prefix+"-01.png", []byte("png"), 0644); err != nil {
				return nil, nil, err
			}
		}
		return nil, nil, nil
	case "tesseract":
		if r.tesseractErr != nil {
			return nil, []byte("ocr failed"), r.tesseractErr
		}
		return []byte(r.ocrText), nil, nil
	default:
		return nil, nil, fmt.Errorf("unexpected command %q", name)
	}
}

func testOCRConfig() config.OCRConfig {
	return config.OCRConfig{
		Pdftoppm:  "pdftoppm",
		Tesseract: "tesseract",
		Language:  "eng",
		DPI:       300,
	}
}

func TestRecognizePageRunsRenderThenOCR(t *testing.T) {
	runner := &stubRunner{ocrText: "scanned resume text"}
	engine := &ocrEngine{cfg: testOCRConfig(), runner: runner}

	got, err := engine.RecognizePage(context.Background(), "cv.pdf", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "scanned resume text" {
		t.Fatalf("unexpected OCR output: %q", got)
	}

	if len(runner.calls) != 2 {
		t.Fatalf("expected pdftoppm then tesseract, got %d calls", len(runner.calls))
	}

	render := strings.Join(runner.calls[0], " ")
	for _, want := range []string{"pdftoppm", "-f 2 -l 2", "-r 300", "-png", "cv.pdf"} {
		if !strings.Contains(render, want) {
			t.Fatalf("render command missing %q: %s", want, render)
		}
	}

	ocr := strings.Join(runner.calls[1], " ")
	for _, want := range []string{"tesseract", "stdout", "-l eng"} {
		if !strings.Contains(ocr, want) {
			t.Fatalf("ocr command missing %q: %s", want, ocr)
		}
	}
}

func TestRecognizePageRenderFailure(t *testing.T) {
	runner := &stubRunner{pdftoppmErr: errors.New("boom")}
	engine := &ocrEngine{cfg: testOCRConfig(), runner: runner}

	if _, err := engine.RecognizePage(context.Background(), "cv.pdf", 1); err == nil {
		t.Fatalf("expected error when rendering fails")
	}
}

func TestRecognizePageNoImageProduced(t *testing.T) {
	runner := &stubRunner{skipRender: true}
	engine := &ocrEngine{cfg: testOCRConfig(), runner: runner}

	if _, err := engine.RecognizePage(context.Background(), "cv.pdf", 1); err == nil {
		t.Fatalf("expected error when no page image is produced")
	}
}

func TestCleanText(t *testing.T) {
	in := "  line one  \n\n\n   line two\t\n"
	want := "line one\nline two"

	if got := CleanText(in); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
