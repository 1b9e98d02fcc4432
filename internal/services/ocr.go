package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"airhr/resume-analyzer/internal/config"
)

// Runner lets us stub external commands in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	return out.Bytes(), errb.Bytes(), err
}

// OCREngine recognizes the text of a single PDF page by rendering it to a
// bitmap and running tesseract over the image.
type OCREngine interface {
	RecognizePage(ctx context.Context, pdfPath string, pageNum int) (string, error)
}

type ocrEngine struct {
	cfg    config.OCRConfig
	runner Runner
}

func NewOCREngine(cfg config.OCRConfig) OCREngine {
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}

	return &ocrEngine{cfg: cfg, runner: execRunner{}}
}

// RecognizePage implements OCREngine.
func (e *ocrEngine) RecognizePage(ctx context.Context, pdfPath string, pageNum int) (string, error) {
	tmpDir, err := os.MkdirTemp("", "ra-ocr-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")

	// pdftoppm -f N -l N -r 300 -png <in.pdf> <tmp/page>
	pageArg := fmt.Sprintf("%d", pageNum)
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm,
		"-f", pageArg, "-l", pageArg,
		"-r", fmt.Sprintf("%d", e.cfg.DPI),
		"-png", pdfPath, prefix,
	)
	if err != nil {
		return "", fmt.Errorf("pdftoppm: %w (%s)", err, truncate(string(errb), 512))
	}

	// pdftoppm pads the page number, so glob instead of guessing the name
	matches, _ := filepath.Glob(prefix + "-*.png")
	if len(matches) == 0 {
		return "", fmt.Errorf("pdftoppm produced no image for page %d", pageNum)
	}
	sort.Strings(matches)

	return e.tesseractOCR(ctx, matches[0])
}

func (e *ocrEngine) tesseractOCR(ctx context.Context, imgPath string) (string, error) {
	// tesseract <img> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, imgPath, "stdout", "-l", e.cfg.Language)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w (%s)", err, truncate(string(errb), 512))
	}
	return string(out), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
