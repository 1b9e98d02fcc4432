package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// PastedCandidate is one chunk of pasted resume text.
type PastedCandidate struct {
	Name string
	Text string
}

// SplitPasted splits free-text paste input on "---" delimiter lines into one
// candidate per chunk. Empty chunks are discarded; names are synthesized
// from the 1-based position among the surviving chunks.
func SplitPasted(pasted string) []PastedCandidate {
	var candidates []PastedCandidate

	for _, chunk := range strings.Split(pasted, "---") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		candidates = append(candidates, PastedCandidate{
			Name: fmt.Sprintf("Pasted_%d", len(candidates)+1),
			Text: chunk,
		})
	}

	return candidates
}

// ArchiveEntry is one PDF pulled out of an uploaded ZIP archive.
type ArchiveEntry struct {
	Name string
	Data []byte
}

// ExtractArchive unpacks the PDF entries of a ZIP archive, in archive order.
// Non-PDF entries and directories are skipped.
func ExtractArchive(data []byte) ([]ArchiveEntry, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	var entries []ArchiveEntry
	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(file.Name)) != ".pdf" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open archive entry %q: %w", file.Name, err)
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read archive entry %q: %w", file.Name, err)
		}

		entries = append(entries, ArchiveEntry{
			Name: filepath.Base(file.Name),
			Data: content,
		})
	}

	return entries, nil
}
