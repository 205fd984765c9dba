package engine

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/nityakrishna/veritas/internal/models"
)

// fakeStore is an in-memory Store for tests, with injectable persist
// failures per submission id.
type fakeStore struct {
	mu          sync.Mutex
	submissions map[string]*models.Submission
	persisted   map[string]*models.PlagiarismResult
	failPersist map[string]error
}

func newFakeStore(subs ...*models.Submission) *fakeStore {
	s := &fakeStore{
		submissions: make(map[string]*models.Submission, len(subs)),
		persisted:   make(map[string]*models.PlagiarismResult),
		failPersist: make(map[string]error),
	}
	for _, sub := range subs {
		s.submissions[sub.ID] = sub
	}
	return s
}

func (s *fakeStore) FetchSubmission(_ context.Context, id string) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submissions[id], nil
}

func (s *fakeStore) FetchCohort(_ context.Context, assignmentID string) ([]*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cohort := make([]*models.Submission, 0, len(s.submissions))
	for _, sub := range s.submissions {
		if sub.AssignmentID == assignmentID && sub.DeletedAt == nil {
			cohort = append(cohort, sub)
		}
	}
	sort.Slice(cohort, func(i, j int) bool { return cohort[i].ID < cohort[j].ID })
	return cohort, nil
}

func (s *fakeStore) PersistResult(_ context.Context, submissionID string, result *models.PlagiarismResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failPersist[submissionID]; ok {
		return err
	}
	s.persisted[submissionID] = result
	return nil
}

func (s *fakeStore) persistedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.persisted)
}

func (s *fakeStore) persistedFor(id string) *models.PlagiarismResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persisted[id]
}

func sub(id, assignmentID, student, content string) *models.Submission {
	return &models.Submission{
		ID:           id,
		AssignmentID: assignmentID,
		StudentID:    student,
		StudentName:  student,
		Content:      content,
	}
}

func newTestPool(t *testing.T) *WorkerPool {
	t.Helper()
	pool := NewWorkerPool(context.Background())
	t.Cleanup(pool.Close)
	return pool
}

const foxText = "The quick brown fox jumps over the lazy dog."

func TestAnalyzeCohort(t *testing.T) {
	e := New(DefaultConfig())
	pool := newTestPool(t)
	ctx := context.Background()

	subject := sub("s1", "a1", "Alice", foxText)
	copycat := sub("s2", "a1", "Bob", foxText)
	unrelated := sub("s3", "a1", "Cara",
		"Completely unrelated writing about volcanoes erupting in Iceland.")
	paraphrase := sub("s4", "a1", "Dan",
		"The quick brown fox leaps over a sleepy dog.")

	result := e.AnalyzeCohort(ctx, subject,
		[]*models.Submission{copycat, unrelated, paraphrase}, pool, nil)

	if result.SubmissionID != "s1" {
		t.Errorf("SubmissionID = %q, want s1", result.SubmissionID)
	}
	if result.OverallScore != 100 {
		t.Errorf("OverallScore = %v, want 100", result.OverallScore)
	}
	if result.RiskLevel != models.RiskCritical {
		t.Errorf("RiskLevel = %v, want critical", result.RiskLevel)
	}
	for name, score := range map[string]float64{
		"ngram":    result.NGramScore,
		"cosine":   result.CosineScore,
		"lcs":      result.LCSScore,
		"jaccard":  result.JaccardScore,
		"sentence": result.SentenceScore,
		"wordfreq": result.WordFrequencyScore,
	} {
		if score != 100 {
			t.Errorf("%s score = %v, want 100 against the identical top match", name, score)
		}
	}

	if len(result.SimilarSubmissions) != 2 {
		t.Fatalf("SimilarSubmissions = %+v, want the copycat and the paraphrase", result.SimilarSubmissions)
	}

	top := result.SimilarSubmissions[0]
	if top.SubmissionID != "s2" || top.Similarity != 100 {
		t.Errorf("top match = %+v, want s2 at 100", top)
	}
	if top.MatchCount != 1 {
		t.Errorf("top MatchCount = %d, want 1 matched sentence", top.MatchCount)
	}
	phrases := strings.Join(top.MatchedPhrases, " | ")
	if !strings.Contains(phrases, "quick brown fox") || !strings.Contains(phrases, "lazy dog") {
		t.Errorf("MatchedPhrases = %v, want coverage of both copied runs", top.MatchedPhrases)
	}

	second := result.SimilarSubmissions[1]
	if second.SubmissionID != "s4" {
		t.Errorf("second match = %+v, want the paraphrase", second)
	}
	if second.Similarity <= e.Config().MinSimilarityPercent || second.Similarity >= 100 {
		t.Errorf("paraphrase similarity = %v, want strictly between the floor and 100", second.Similarity)
	}

	wantCommon := len(top.MatchedPhrases) + len(second.MatchedPhrases)
	if result.AnalysisDetails.CommonPhraseCount != wantCommon {
		t.Errorf("CommonPhraseCount = %d, want %d", result.AnalysisDetails.CommonPhraseCount, wantCommon)
	}
}

func TestAnalyzeCohortTieBreaksByID(t *testing.T) {
	e := New(DefaultConfig())
	pool := newTestPool(t)

	subject := sub("s1", "a1", "Alice", foxText)
	others := []*models.Submission{
		sub("s3", "a1", "Cara", foxText),
		sub("s2", "a1", "Bob", foxText),
	}

	result := e.AnalyzeCohort(context.Background(), subject, others, pool, nil)
	if len(result.SimilarSubmissions) != 2 {
		t.Fatalf("SimilarSubmissions = %+v, want both copies", result.SimilarSubmissions)
	}
	if result.SimilarSubmissions[0].SubmissionID != "s2" ||
		result.SimilarSubmissions[1].SubmissionID != "s3" {
		t.Errorf("equal scores should rank by ascending id, got %+v", result.SimilarSubmissions)
	}
}

func TestAnalyzeCohortZeroCases(t *testing.T) {
	e := New(DefaultConfig())
	pool := newTestPool(t)
	ctx := context.Background()

	t.Run("empty subject", func(t *testing.T) {
		result := e.AnalyzeCohort(ctx, sub("s1", "a1", "Alice", "   "),
			[]*models.Submission{sub("s2", "a1", "Bob", foxText)}, pool, nil)
		if result.OverallScore != 0 || result.RiskLevel != models.RiskNone {
			t.Errorf("empty subject: score %v risk %v, want 0 and none", result.OverallScore, result.RiskLevel)
		}
		if len(result.SimilarSubmissions) != 0 {
			t.Errorf("empty subject should have no matches, got %+v", result.SimilarSubmissions)
		}
	})

	t.Run("no other submissions", func(t *testing.T) {
		result := e.AnalyzeCohort(ctx, sub("s1", "a1", "Alice", foxText), nil, pool, nil)
		if result.OverallScore != 0 || result.RiskLevel != models.RiskNone {
			t.Errorf("lone submission: score %v risk %v, want 0 and none", result.OverallScore, result.RiskLevel)
		}
		if result.AnalysisDetails.TotalWords == 0 {
			t.Error("lone submission should still carry analysis details")
		}
		if result.SimilarSubmissions == nil {
			t.Error("SimilarSubmissions must be an empty slice, not nil")
		}
	})

	t.Run("empty partners are skipped", func(t *testing.T) {
		result := e.AnalyzeCohort(ctx, sub("s1", "a1", "Alice", foxText),
			[]*models.Submission{sub("s2", "a1", "Bob", "")}, pool, nil)
		if result.OverallScore != 0 || len(result.SimilarSubmissions) != 0 {
			t.Errorf("empty partner must not match, got %+v", result)
		}
	})
}

func TestAnalyzeCohortCacheGivesSymmetricScores(t *testing.T) {
	e := New(DefaultConfig())
	pool := newTestPool(t)
	ctx := context.Background()
	cache := NewPairCache()

	a := sub("s1", "a1", "Alice", foxText+" It was a bright cold day in April.")
	b := sub("s2", "a1", "Bob", foxText)

	first := e.AnalyzeCohort(ctx, a, []*models.Submission{b}, pool, cache)
	second := e.AnalyzeCohort(ctx, b, []*models.Submission{a}, pool, cache)

	if _, ok := cache.Get("s1", "s2"); !ok {
		t.Fatal("pair should be cached after the first analysis")
	}
	if first.OverallScore != second.OverallScore {
		t.Errorf("similarity not symmetric: %v vs %v", first.OverallScore, second.OverallScore)
	}
	if len(first.SimilarSubmissions) != 1 || len(second.SimilarSubmissions) != 1 {
		t.Fatalf("both directions should match: %+v / %+v", first, second)
	}
	if first.SimilarSubmissions[0].MatchCount != second.SimilarSubmissions[0].MatchCount {
		t.Errorf("match counts differ across directions")
	}
}

func TestCheckSingle(t *testing.T) {
	e := New(DefaultConfig())
	pool := newTestPool(t)
	ctx := context.Background()

	t.Run("persists and returns the result", func(t *testing.T) {
		store := newFakeStore(
			sub("s1", "a1", "Alice", foxText),
			sub("s2", "a1", "Bob", foxText),
			sub("s9", "a2", "Zoe", foxText),
		)
		result, err := e.CheckSingle(ctx, store, pool, "s1", "a1")
		if err != nil {
			t.Fatalf("CheckSingle: %v", err)
		}
		if got := store.persistedFor("s1"); got != result {
			t.Errorf("persisted result differs from returned result")
		}
		if result.OverallScore != 100 {
			t.Errorf("OverallScore = %v, want 100", result.OverallScore)
		}
		for _, m := range result.SimilarSubmissions {
			if m.SubmissionID == "s1" {
				t.Error("subject must not be compared against itself")
			}
			if m.SubmissionID == "s9" {
				t.Error("other assignments must not leak into the cohort")
			}
		}
	})

	t.Run("unknown submission", func(t *testing.T) {
		store := newFakeStore(sub("s1", "a1", "Alice", foxText))
		_, err := e.CheckSingle(ctx, store, pool, "missing", "a1")
		if !errors.Is(err, ErrSubmissionNotFound) {
			t.Errorf("err = %v, want ErrSubmissionNotFound", err)
		}
	})

	t.Run("persist failure propagates", func(t *testing.T) {
		store := newFakeStore(
			sub("s1", "a1", "Alice", foxText),
			sub("s2", "a1", "Bob", foxText),
		)
		store.failPersist["s1"] = errors.New("write refused")
		if _, err := e.CheckSingle(ctx, store, pool, "s1", "a1"); err == nil {
			t.Error("expected persist failure to propagate")
		}
	})

	t.Run("deleted submissions are excluded", func(t *testing.T) {
		deleted := sub("s3", "a1", "Mallory", foxText)
		now := deleted.SubmittedAt
		deleted.DeletedAt = &now

		store := newFakeStore(
			sub("s1", "a1", "Alice", foxText),
			sub("s2", "a1", "Bob", "Original musings on an entirely different theme."),
			deleted,
		)
		result, err := e.CheckSingle(ctx, store, pool, "s1", "a1")
		if err != nil {
			t.Fatalf("CheckSingle: %v", err)
		}
		for _, m := range result.SimilarSubmissions {
			if m.SubmissionID == "s3" {
				t.Error("soft-deleted submission must not appear in matches")
			}
		}
		if result.OverallScore == 100 {
			t.Error("only the deleted copy was identical; score must not come from it")
		}
	})
}
