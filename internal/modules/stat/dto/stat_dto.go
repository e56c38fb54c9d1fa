package dto

import statRepo "sourcingsprints.com/bookclub/internal/modules/stat/repository"

// StatsResponse is the club dashboard payload, recomputed on every request.
// The generosity boards rank people by the average rating they hand out.
type StatsResponse struct {
	BooksRead    int64                  `json:"books_read"`
	TeamAverage  *float64               `json:"team_average"`
	TopReviewers []statRepo.ReviewerRow `json:"top_reviewers"`
	MostGenerous []statRepo.RaterRow    `json:"most_generous"`
	MostCritical []statRepo.RaterRow    `json:"most_critical"`
}
