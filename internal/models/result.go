package models

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Source       string `json:"source"`
}

type AnalyzeRequest struct {
	JobTitle       string   `json:"job_title"`
	JobDescription string   `json:"job_description"`
	ScoreThreshold *int     `json:"score_threshold,omitempty"`
	DocumentIDs    []string `json:"document_ids"`
	PastedText     string   `json:"pasted_text,omitempty"`
}

type AnalyzeResponse struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	Candidates int    `json:"candidates"`
}

type CandidateView struct {
	Name               string `json:"name"`
	Score              string `json:"score"`
	MatchPercent       string `json:"match_percent"`
	Experience         string `json:"experience"`
	Verdict            string `json:"verdict"`
	HireRecommendation string `json:"hire_recommendation"`
	Strengths          string `json:"strengths"`
	RedFlags           string `json:"red_flags"`
	Summary            string `json:"summary"`
	FullReply          string `json:"full_reply"`
}

type ResultResponse struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	Threshold    int             `json:"threshold"`
	Candidates   []CandidateView `json:"candidates,omitempty"`
	Passed       []string        `json:"passed,omitempty"`
	Best         []string        `json:"best,omitempty"`
	ErrorMessage *string         `json:"error_message,omitempty"`
}
