package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateStudyRequest is the request body for generating a study.
type CreateStudyRequest struct {
	Query           string   `json:"query"`
	References      []string `json:"references"`
	Translation     string   `json:"translation,omitempty"`
	IncludeOriginal bool     `json:"includeOriginal,omitempty"`
	IsPublic        bool     `json:"isPublic,omitempty"`
}

// Validate checks required fields.
func (r CreateStudyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Query, validation.Required),
		validation.Field(&r.References, validation.Required, validation.Length(1, 20)),
	)
}

// UpdateStudyRequest is the request body for patching a study.
type UpdateStudyRequest struct {
	IsPublic    *bool   `json:"isPublic,omitempty"`
	Explanation *string `json:"explanation,omitempty"`
}

// NarrateRequest is the request body for study narration.
type NarrateRequest struct {
	CheckOnly bool `json:"checkOnly,omitempty"`
}

// NoteRequest is the request body for adding a note.
type NoteRequest struct {
	Reference string `json:"reference,omitempty"`
	Content   string `json:"content"`
}

// Validate checks required fields.
func (r NoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required),
	)
}

// CoverageRequest is the request body for recording read chapters.
type CoverageRequest struct {
	Book     string `json:"book"`
	Chapters []int  `json:"chapters"`
}

// Validate checks required fields.
func (r CoverageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Book, validation.Required),
		validation.Field(&r.Chapters, validation.Required),
	)
}
