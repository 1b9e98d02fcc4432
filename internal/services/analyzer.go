package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"airhr/resume-analyzer/internal/models"
	"airhr/resume-analyzer/internal/repositories"
)

// AnalyzerService runs one analysis batch: per candidate, extract the
// document text, ask the model for an evaluation, and parse the reply into
// structured fields.
//
// The batch contract is "one populated record per input, always". A failed
// extraction becomes placeholder text, a failed model call becomes a
// diagnostic reply, and either flows through the field extractor like any
// other reply, ending as a row of absent-value sentinels.
type AnalyzerService interface {
	ProcessBatch(ctx context.Context, batchID uuid.UUID) error
}

type analyzerService struct {
	batchRepo      repositories.BatchRepository
	docRepo        repositories.DocumentRepository
	extractor      DocumentExtractor
	geminiService  GeminiService
	promptBuilder  *PromptBuilder
	template       []FieldSpec
	maxRetries     int
	requestTimeout time.Duration
}

func NewAnalyzerService(
	batchRepo repositories.BatchRepository,
	docRepo repositories.DocumentRepository,
	extractor DocumentExtractor,
	geminiService GeminiService,
	promptBuilder *PromptBuilder,
	maxRetries int,
	requestTimeout time.Duration,
) AnalyzerService {
	return &analyzerService{
		batchRepo:      batchRepo,
		docRepo:        docRepo,
		extractor:      extractor,
		geminiService:  geminiService,
		promptBuilder:  promptBuilder,
		template:       DefaultReportTemplate(),
		maxRetries:     maxRetries,
		requestTimeout: requestTimeout,
	}
}

func (a *analyzerService) ProcessBatch(ctx context.Context, batchID uuid.UUID) error {
	if err := a.batchRepo.UpdateStatus(batchID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting analysis for batch: %s\n", batchID)

	batch, err := a.batchRepo.FindByID(batchID)
	if err != nil {
		a.batchRepo.UpdateError(batchID, err.Error())
		return fmt.Errorf("failed to get batch: %w", err)
	}

	candidates, err := a.batchRepo.FindCandidates(batchID)
	if err != nil {
		a.batchRepo.UpdateError(batchID, err.Error())
		return fmt.Errorf("failed to get candidates: %w", err)
	}

	for _, candidate := range candidates {
		a.processCandidate(ctx, batch, candidate)
	}

	if err := a.batchRepo.UpdateStatus(batchID, models.StatusCompleted); err != nil {
		return fmt.Errorf("failed to complete batch: %w", err)
	}

	log.Printf("✅ Analysis completed for batch: %s (%d candidates)\n", batchID, len(candidates))
	return nil
}

// processCandidate never fails the batch; every degradation ends as sentinel
// field values on the candidate's row.
func (a *analyzerService) processCandidate(ctx context.Context, batch *models.Batch, candidate models.Candidate) {
	log.Printf("📄 Analyzing candidate %q\n", candidate.Name)

	text := a.candidateText(ctx, candidate)
	prompt := a.promptBuilder.BuildEvaluationPrompt(CleanText(text), batch.JobTitle, batch.JobDescription)

	reply := a.evaluate(ctx, prompt)
	values := ExtractFields(reply, a.template)

	update := &repositories.CandidateUpdateData{
		Score:              numberOrNil(values[FieldScore], 0, 100),
		MatchPercent:       numberOrNil(values[FieldMatch], 0, 100),
		Experience:         values[FieldExperience].Display(),
		Verdict:            values[FieldVerdict].Display(),
		HireRecommendation: values[FieldHire].Display(),
		Strengths:          values[FieldStrengths].Display(),
		RedFlags:           values[FieldRedFlags].Display(),
		Summary:            values[FieldSummary].Display(),
		FullReply:          reply,
	}

	if err := a.batchRepo.UpdateCandidateResult(candidate.ID, update); err != nil {
		log.Printf("❌ Failed to save result for %q: %v\n", candidate.Name, err)
	}
}

// candidateText resolves the raw text for one candidate: the pasted chunk if
// there is one, otherwise the extracted document text. A missing document
// record degrades to a placeholder, same as an unreadable file.
func (a *analyzerService) candidateText(ctx context.Context, candidate models.Candidate) string {
	if candidate.DocumentID == nil {
		return candidate.PastedText
	}

	doc, err := a.docRepo.FindByID(*candidate.DocumentID)
	if err != nil {
		log.Printf("⚠️  Document lookup failed for %q: %v\n", candidate.Name, err)
		return fmt.Sprintf("[ERROR reading PDF] %v", err)
	}

	return a.extractor.Extract(ctx, doc.FilePath)
}

// evaluate calls the model with a bounded timeout. A failed or expired call
// is converted into a diagnostic reply that the field extractor handles like
// any other: every label search misses and the record fills with sentinels.
func (a *analyzerService) evaluate(ctx context.Context, prompt string) string {
	callCtx, cancel := context.WithTimeout(ctx, a.requestTimeout)
	defer cancel()

	reply, err := a.geminiService.GenerateTextWithRetry(callCtx, prompt, 0.3, a.maxRetries)
	if err != nil {
		log.Printf("⚠️  Model call failed: %v\n", err)
		return fmt.Sprintf("[API Error] %v", err)
	}
	return reply
}

// numberOrNil converts a numeric field value into a nullable column value.
// Absent values and values outside the legal range both map to NULL; an
// out-of-range number means the label's line was misread and cannot be
// trusted as a score.
func numberOrNil(v FieldValue, min, max int) *int {
	if !v.Found || v.Number < min || v.Number > max {
		return nil
	}
	n := v.Number
	return &n
}
