package models

// RiskLevel is a discrete banding of the composite similarity score.
type RiskLevel string

const (
	RiskNone     RiskLevel = "none"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Step tracks the lifecycle of an assignment-wide check.
type Step string

const (
	StepIdle      Step = "idle"
	StepQueued    Step = "queued"
	StepRunning   Step = "running"
	StepCompleted Step = "completed"
	StepFailed    Step = "failed"
)

// SimilarityResult is one ranked match between the subject submission
// and another submission in the same cohort. Similarity is symmetric:
// the value for (A,B) equals the value for (B,A).
type SimilarityResult struct {
	SubmissionID   string   `bson:"submissionId" json:"submissionId"`
	StudentName    string   `bson:"studentName" json:"studentName"`
	Similarity     float64  `bson:"similarity" json:"similarity"`
	MatchCount     int      `bson:"matchCount" json:"matchCount"`
	MatchedPhrases []string `bson:"matchedPhrases" json:"matchedPhrases"`
}

// AnalysisDetails holds descriptive statistics for the subject
// submission, independent of any comparison partner.
type AnalysisDetails struct {
	TotalWords         int      `bson:"totalWords" json:"totalWords"`
	UniqueWords        int      `bson:"uniqueWords" json:"uniqueWords"`
	TotalSentences     int      `bson:"totalSentences" json:"totalSentences"`
	AverageWordLength  float64  `bson:"averageWordLength" json:"averageWordLength"`
	VocabularyRichness float64  `bson:"vocabularyRichness" json:"vocabularyRichness"`
	CommonPhraseCount  int      `bson:"commonPhraseCount" json:"commonPhraseCount"`
	SuspiciousPatterns []string `bson:"suspiciousPatterns" json:"suspiciousPatterns"`
}

// PlagiarismResult is one submission's full cohort report. It is
// overwritten, not appended, on every re-check. The six metric scores
// are the scores against the single most similar partner.
type PlagiarismResult struct {
	SubmissionID       string             `bson:"submissionId" json:"submissionId"`
	OverallScore       float64            `bson:"overallScore" json:"overallScore"`
	RiskLevel          RiskLevel          `bson:"riskLevel" json:"riskLevel"`
	NGramScore         float64            `bson:"ngramScore" json:"ngramScore"`
	CosineScore        float64            `bson:"cosineScore" json:"cosineScore"`
	LCSScore           float64            `bson:"lcsScore" json:"lcsScore"`
	JaccardScore       float64            `bson:"jaccardScore" json:"jaccardScore"`
	SentenceScore      float64            `bson:"sentenceScore" json:"sentenceScore"`
	WordFrequencyScore float64            `bson:"wordFrequencyScore" json:"wordFrequencyScore"`
	SimilarSubmissions []SimilarityResult `bson:"similarSubmissions" json:"similarSubmissions"`
	AnalysisDetails    AnalysisDetails    `bson:"analysisDetails" json:"analysisDetails"`
}

// CheckSubmissionRequest triggers a single-submission check.
type CheckSubmissionRequest struct {
	SubmissionID string `json:"submissionId" binding:"required"`
	AssignmentID string `json:"assignmentId" binding:"required"`
}

// PreviewRequest compares two raw texts without touching the store.
type PreviewRequest struct {
	TextA string `json:"textA"`
	TextB string `json:"textB"`
}

// PreviewResponse carries the quick similarity estimate.
type PreviewResponse struct {
	Similarity float64 `json:"similarity"`
}

// CheckAssignmentResponse acknowledges an accepted batch run.
type CheckAssignmentResponse struct {
	Step         Step   `json:"step"`
	AssignmentID string `json:"assignmentId"`
	RunID        string `json:"runId"`
}

// BatchStatusResponse reports batch progress for the UI.
type BatchStatusResponse struct {
	Step    Step `json:"step"`
	Current int  `json:"current"`
	Total   int  `json:"total"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
