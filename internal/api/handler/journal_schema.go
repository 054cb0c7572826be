package handler

import "github.com/mindhaven/wellness-api/internal/core/domain"

type createJournalRequest struct {
	Title    string   `json:"title"   validate:"required,max=200"`
	Content  string   `json:"content" validate:"required"`
	Mood     string   `json:"mood"`
	Emotions []string `json:"emotions"`
}

type updateJournalRequest struct {
	Title    *string  `json:"title"   validate:"omitempty,min=1,max=200"`
	Content  *string  `json:"content" validate:"omitempty,min=1"`
	Mood     *string  `json:"mood"`
	Emotions []string `json:"emotions"`
}

type journalEntryResponse struct {
	Entry domain.JournalEntry `json:"entry"`
}

type journalListResponse struct {
	Entries []domain.JournalEntry `json:"entries"`
	Count   int                   `json:"count"`
}
