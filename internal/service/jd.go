package service

import (
	"context"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/shortlist-dev/shortlister/internal/domain"
	"github.com/shortlist-dev/shortlister/internal/logger"
	"github.com/shortlist-dev/shortlister/internal/markdown"
	"github.com/shortlist-dev/shortlister/internal/scoring"
)

type JdService interface {
	Create(jd domain.JobDescription) (domain.JdId, error)
	Get(id domain.JdId, owner domain.UserId) (domain.JobDescription, error)
	History(owner domain.UserId, skip, limit int) ([]domain.JobDescription, error)
	Preview(id domain.JdId, owner domain.UserId) (string, error)
	Update(jd domain.JobDescription) error
	Delete(id domain.JdId, owner domain.UserId) error
}

type JdStorage interface {
	SaveJd(jd domain.JobDescription) (domain.JdId, error)
	Jd(id domain.JdId, owner domain.UserId) (domain.JobDescription, error)
	JdHistory(owner domain.UserId, skip, limit int) ([]domain.JobDescription, error)
	UpdateJd(jd domain.JobDescription) error
	DeleteJd(id domain.JdId, owner domain.UserId) error
}

type Jd struct {
	storage  JdStorage
	scoring  *scoring.Client
	renderer *markdown.Renderer
	policy   *bluemonday.Policy
}

func NewJd(storage JdStorage, scoringClient *scoring.Client) *Jd {
	return &Jd{
		storage:  storage,
		scoring:  scoringClient,
		renderer: markdown.New(),
		policy:   bluemonday.StrictPolicy(),
	}
}

// sanitize strips markup from stored text. Descriptions are kept as plain
// markdown source; rendering happens only in Preview.
func (j *Jd) sanitize(jd domain.JobDescription) domain.JobDescription {
	jd.Title = strings.TrimSpace(j.policy.Sanitize(jd.Title))
	jd.Description = j.policy.Sanitize(jd.Description)
	return jd
}

// Create stores the job description and then forwards it to the external
// scoring webhook when one is configured. Forwarding is best-effort: a
// webhook failure is logged, never surfaced to the submitter.
func (j *Jd) Create(jd domain.JobDescription) (domain.JdId, error) {
	jd = j.sanitize(jd)
	jd.Created = time.Now().UTC()

	id, err := j.storage.SaveJd(jd)
	if err != nil {
		return 0, err
	}
	jd.Id = id

	if j.scoring.Enabled() {
		go func(jd domain.JobDescription) {
			// Detached from the request: a client disconnect must not
			// cancel delivery. The client carries its own timeout.
			if err := j.scoring.Forward(context.Background(), jd); err != nil {
				logger.Log.Warn("failed to forward jd to scoring webhook", "jd_id", jd.Id, "error", err)
			}
		}(jd)
	}

	return id, nil
}

func (j *Jd) Get(id domain.JdId, owner domain.UserId) (domain.JobDescription, error) {
	return j.storage.Jd(id, owner)
}

func (j *Jd) History(owner domain.UserId, skip, limit int) ([]domain.JobDescription, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return j.storage.JdHistory(owner, skip, limit)
}

// Preview renders the stored description markdown to sanitized HTML.
func (j *Jd) Preview(id domain.JdId, owner domain.UserId) (string, error) {
	jd, err := j.storage.Jd(id, owner)
	if err != nil {
		return "", err
	}
	return j.renderer.Render(jd.Description)
}

func (j *Jd) Update(jd domain.JobDescription) error {
	jd = j.sanitize(jd)
	jd.Updated = time.Now().UTC()
	return j.storage.UpdateJd(jd)
}

func (j *Jd) Delete(id domain.JdId, owner domain.UserId) error {
	return j.storage.DeleteJd(id, owner)
}
