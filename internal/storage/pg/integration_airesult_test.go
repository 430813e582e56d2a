package pg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shortlist-dev/shortlister/internal/domain"
)

func createTestJd(t *testing.T, owner domain.UserId) domain.JdId {
	t.Helper()
	id, err := storage.SaveJd(domain.JobDescription{
		UserId:      owner,
		Title:       "Scored JD",
		Description: "x",
		Skills:      map[string]int{},
		Created:     time.Now().UTC(),
	})
	require.NoError(t, err)
	return id
}

func TestSaveResultsAndQuery(t *testing.T) {
	owner := createTestUser(t, "ai-save@webknot.in")
	jdId := createTestJd(t, owner)

	err := storage.SaveResults([]domain.AIResult{
		{JdId: jdId, UserId: owner, CandidateName: "Ravi", SkillsScore: 30, JdScore: 0.5, OverallScore: 45},
		{JdId: jdId, UserId: owner, CandidateName: "Asha", SkillsScore: 60, JdScore: 0.9, Description: "Strong fit", OverallScore: 87},
	})
	require.NoError(t, err)

	results, err := storage.ResultsByJd(jdId, owner)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Asha", results[0].CandidateName, "highest overall score first")
	assert.Equal(t, 87.0, results[0].OverallScore)
	assert.Equal(t, "Strong fit", results[0].Description)
	assert.Equal(t, "Ravi", results[1].CandidateName)

	count, err := storage.CandidateCount(jdId, owner)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestResultsByJdScoping(t *testing.T) {
	owner := createTestUser(t, "ai-owner@webknot.in")
	other := createTestUser(t, "ai-other@webknot.in")
	jdId := createTestJd(t, owner)

	err := storage.SaveResults([]domain.AIResult{
		{JdId: jdId, UserId: owner, CandidateName: "Asha", OverallScore: 87},
	})
	require.NoError(t, err)

	results, err := storage.ResultsByJd(jdId, other)
	require.NoError(t, err)
	assert.Empty(t, results, "results are scoped to their owner")

	count, err := storage.CandidateCount(jdId, other)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSaveResultsEmptyBatch(t *testing.T) {
	require.NoError(t, storage.SaveResults(nil))
}
