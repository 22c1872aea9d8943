package dto

import "time"

type CreateCompetitionRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EndDate     time.Time `json:"end_date"`
}

type UpdateCompetitionRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	EndDate     *time.Time `json:"end_date"`
}

type CreateOptionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type UpdateOptionRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type CreateVoteRequest struct {
	CompetitionID string `json:"competition_id"`
	OptionID      string `json:"option_id"`
}
