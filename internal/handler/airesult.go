package handler

import (
	"fmt"
	"net/http"

	"github.com/shortlist-dev/shortlister/internal/domain"
	"github.com/shortlist-dev/shortlister/internal/middleware"
)

type aiResultInput struct {
	JdId        domain.JdId `validate:"required" json:"jd_id"`
	Name        string      `validate:"required" json:"name"`
	SkillsScore float64     `json:"skills_score"`
	JdScore     float64     `json:"jd_score"`
	Description string      `json:"description"`
}

type aiResultView struct {
	Name         string  `json:"name"`
	SkillsScore  float64 `json:"skills_score"`
	JdScore      float64 `json:"jd_score"`
	OverallScore float64 `json:"overall_score"`
	Description  string  `json:"description,omitempty"`
}

type aiResultsResponse struct {
	Results []aiResultView `json:"results"`
}

type candidateCountResponse struct {
	Count int `json:"count"`
}

func (h *Handler) StoreAIResults(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r)

	var inputs []aiResultInput
	if err := decodeValidateSlice(r, &inputs); err != nil {
		writeError(w, err)
		return
	}

	results := make([]domain.AIResult, 0, len(inputs))
	for _, in := range inputs {
		results = append(results, domain.AIResult{
			JdId:          in.JdId,
			CandidateName: in.Name,
			SkillsScore:   in.SkillsScore,
			JdScore:       in.JdScore,
			Description:   in.Description,
		})
	}

	stored, err := h.ai.StoreBulk(claims.UserId, results)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("%d AI results stored successfully", stored)})
}

func (h *Handler) GetAIResults(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r)

	id, err := jdIdFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	results, err := h.ai.ResultsForJd(id, claims.UserId)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := aiResultsResponse{Results: []aiResultView{}}
	for _, res := range results {
		resp.Results = append(resp.Results, aiResultView{
			Name:         res.CandidateName,
			SkillsScore:  res.SkillsScore,
			JdScore:      res.JdScore,
			OverallScore: res.OverallScore,
			Description:  res.Description,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetCandidateCount(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r)

	id, err := jdIdFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	count, err := h.ai.CandidateCount(id, claims.UserId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, candidateCountResponse{Count: count})
}
