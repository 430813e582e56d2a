package service

import (
	"math"

	"github.com/shortlist-dev/shortlister/internal/domain"
)

type AIResultService interface {
	StoreBulk(owner domain.UserId, results []domain.AIResult) (int, error)
	ResultsForJd(jdId domain.JdId, owner domain.UserId) ([]domain.AIResult, error)
	CandidateCount(jdId domain.JdId, owner domain.UserId) (int, error)
}

type AIResultStorage interface {
	SaveResults(results []domain.AIResult) error
	ResultsByJd(jdId domain.JdId, owner domain.UserId) ([]domain.AIResult, error)
	CandidateCount(jdId domain.JdId, owner domain.UserId) (int, error)
}

type AIResult struct {
	storage AIResultStorage
}

func NewAIResult(storage AIResultStorage) *AIResult {
	return &AIResult{storage: storage}
}

// overallScore folds the 0-1 jd score into the 0-70 skills score:
// jd_score*30 + skills_score, rounded to 2 decimals.
func overallScore(r domain.AIResult) float64 {
	return math.Round((r.JdScore*30+r.SkillsScore)*100) / 100
}

// StoreBulk persists a batch of scores for the owner, computing the
// overall score server-side. Returns the number of stored results.
func (a *AIResult) StoreBulk(owner domain.UserId, results []domain.AIResult) (int, error) {
	for i := range results {
		results[i].UserId = owner
		results[i].OverallScore = overallScore(results[i])
	}
	if err := a.storage.SaveResults(results); err != nil {
		return 0, err
	}
	return len(results), nil
}

func (a *AIResult) ResultsForJd(jdId domain.JdId, owner domain.UserId) ([]domain.AIResult, error) {
	return a.storage.ResultsByJd(jdId, owner)
}

func (a *AIResult) CandidateCount(jdId domain.JdId, owner domain.UserId) (int, error) {
	return a.storage.CandidateCount(jdId, owner)
}
