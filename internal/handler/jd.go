package handler

import (
	"net/http"
	"time"

	"github.com/shortlist-dev/shortlister/internal/domain"
	"github.com/shortlist-dev/shortlister/internal/middleware"
)

type jdInput struct {
	JobTitle       string         `validate:"required" json:"job_title"`
	JobDescription string         `validate:"required" json:"job_description"`
	Skills         map[string]int `validate:"required" json:"skills"`
}

type jdResponse struct {
	Message string      `json:"message"`
	JdId    domain.JdId `json:"jd_id,omitempty"`
}

type jdSingleResponse struct {
	JdId           domain.JdId    `json:"jd_id"`
	JobTitle       string         `json:"job_title"`
	JobDescription string         `json:"job_description"`
	Skills         map[string]int `json:"skills"`
	CreatedAt      time.Time      `json:"created_at"`
}

type jdHistoryResponse struct {
	History []jdSingleResponse `json:"history"`
}

type jdPreviewResponse struct {
	JdId domain.JdId `json:"jd_id"`
	HTML string      `json:"html"`
}

func toJdSingle(jd domain.JobDescription) jdSingleResponse {
	return jdSingleResponse{
		JdId:           jd.Id,
		JobTitle:       jd.Title,
		JobDescription: jd.Description,
		Skills:         jd.Skills,
		CreatedAt:      jd.Created,
	}
}

func (h *Handler) SubmitJd(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r)

	var input jdInput
	if err := decodeValidate(r.Body, &input); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.jd.Create(domain.JobDescription{
		UserId:      claims.UserId,
		Title:       input.JobTitle,
		Description: input.JobDescription,
		Skills:      input.Skills,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jdResponse{Message: "JD saved successfully", JdId: id})
}

func (h *Handler) GetJd(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r)

	id, err := jdIdFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	jd, err := h.jd.Get(id, claims.UserId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toJdSingle(jd))
}

func (h *Handler) GetJdHistory(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r)

	skip := intQueryParam(r, "skip", 0)
	limit := intQueryParam(r, "limit", 10)

	history, err := h.jd.History(claims.UserId, skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := jdHistoryResponse{History: []jdSingleResponse{}}
	for _, jd := range history {
		resp.History = append(resp.History, toJdSingle(jd))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) PreviewJd(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r)

	id, err := jdIdFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	html, err := h.jd.Preview(id, claims.UserId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jdPreviewResponse{JdId: id, HTML: html})
}

func (h *Handler) UpdateJd(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r)

	id, err := jdIdFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var input jdInput
	if err := decodeValidate(r.Body, &input); err != nil {
		writeError(w, err)
		return
	}

	err = h.jd.Update(domain.JobDescription{
		Id:          id,
		UserId:      claims.UserId,
		Title:       input.JobTitle,
		Description: input.JobDescription,
		Skills:      input.Skills,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jdResponse{Message: "JD updated successfully"})
}

func (h *Handler) DeleteJd(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r)

	id, err := jdIdFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.jd.Delete(id, claims.UserId); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jdResponse{Message: "JD deleted successfully"})
}
