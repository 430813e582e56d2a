package domain

// AIResult is a candidate score produced by the external AI service for
// one job description. OverallScore is computed server-side on ingestion.
type AIResult struct {
	Id            int64
	JdId          JdId
	UserId        UserId
	CandidateName string
	SkillsScore   float64 // 0-70
	JdScore       float64 // 0-1
	Description   string
	OverallScore  float64
}
