package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"airhr/resume-analyzer/internal/models"
	"airhr/resume-analyzer/internal/repositories"
	"airhr/resume-analyzer/internal/services"
)

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /upload. It accepts individual PDF resumes and
// ZIP archives of PDFs under the "files" field.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files uploaded. Please upload PDF resumes or a ZIP archive under 'files'.",
		})
	}

	var responses []models.UploadResponse

	for _, file := range files {
		if file.Size > h.maxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("File %q too large. Max size: %d bytes", file.Filename, h.maxFileSize),
			})
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		switch ext {
		case ".pdf":
			resp, err := h.storePDF(file)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": fmt.Sprintf("failed to save %q: %v", file.Filename, err),
				})
			}
			responses = append(responses, *resp)

		case ".zip":
			archived, err := h.storeArchive(file)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": fmt.Sprintf("failed to unpack %q: %v", file.Filename, err),
				})
			}
			responses = append(responses, archived...)

		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("unsupported file type %q, expected .pdf or .zip", ext),
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Files uploaded successfully",
		"documents": responses,
	})
}

func (h *UploadHandler) storePDF(file *multipart.FileHeader) (*models.UploadResponse, error) {
	filename, filePath, err := h.storageService.SaveFile(file)
	if err != nil {
		return nil, err
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		Source:           "upload",
		FilePath:         filePath,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return nil, err
	}

	return &models.UploadResponse{
		ID:           doc.ID.String(),
		Filename:     doc.Filename,
		OriginalName: doc.OriginalFileName,
		Source:       doc.Source,
	}, nil
}

func (h *UploadHandler) storeArchive(file *multipart.FileHeader) ([]models.UploadResponse, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}

	entries, err := services.ExtractArchive(data)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("archive contains no PDF files")
	}

	var responses []models.UploadResponse
	for _, entry := range entries {
		filename, filePath, err := h.storageService.SaveBytes(entry.Name, entry.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to save archive entry %q: %w", entry.Name, err)
		}

		doc := models.Document{
			ID:               uuid.New(),
			Filename:         filename,
			OriginalFileName: entry.Name,
			Source:           "archive",
			FilePath:         filePath,
			CreatedAt:        time.Now(),
			UpdatedAt:        time.Now(),
		}

		if err := h.docRepo.Create(&doc); err != nil {
			h.storageService.DeleteFile(filename)
			return nil, fmt.Errorf("failed to save record for %q: %w", entry.Name, err)
		}

		responses = append(responses, models.UploadResponse{
			ID:           doc.ID.String(),
			Filename:     doc.Filename,
			OriginalName: doc.OriginalFileName,
			Source:       doc.Source,
		})
	}

	return responses, nil
}
