package models

import "time"

// Program is an academic program questions are grouped under.
type Program struct {
	ProgramID   int64  `json:"program_id"`
	ProgramName string `json:"program_name"`
}

// Competency is a skill area within the question bank.
type Competency struct {
	CompetencyID   int64  `json:"competency_id"`
	CompetencyName string `json:"competency_name"`
}

// Choice is one answer option of a question.
type Choice struct {
	ChoiceID   int64  `json:"choice_id,omitempty"`
	QuestionID int64  `json:"-"`
	ChoiceText string `json:"choiceText" validate:"required"`
	IsCorrect  bool   `json:"isCorrect"`
}

// Question is a multiple-choice item of the question bank.
type Question struct {
	QuestionID     int64     `json:"question_id"`
	ProgramID      *int64    `json:"program_id,omitempty"`
	ProgramName    string    `json:"program_name,omitempty"`
	CompetencyID   *int64    `json:"competency_id"`
	CompetencyName string    `json:"competency_name,omitempty"`
	QuestionText   string    `json:"questionText"`
	Choices        []Choice  `json:"choices"`
	CreatedAt      time.Time `json:"-"`
}

// QuestionInput is the body of create and update requests. Program and
// competency are referenced by name; unknown names are stored as NULL.
type QuestionInput struct {
	QuestionText string   `json:"question_text" validate:"required"`
	Program      string   `json:"program"`
	Competency   string   `json:"competency"`
	Choices      []Choice `json:"choices" validate:"dive"`
}

// QuestionFilter narrows question listings. Empty fields do not filter.
// Program and Competency match names by substring; Search matches the
// question text or any of its choices.
type QuestionFilter struct {
	Program    string `json:"program,omitempty"`
	Competency string `json:"competency,omitempty"`
	Search     string `json:"search,omitempty"`
}

// Empty reports whether the filter narrows nothing.
func (f QuestionFilter) Empty() bool {
	return f.Program == "" && f.Competency == "" && f.Search == ""
}

// QuestionRow is one flat row of the question/program/competency/choice
// join returned by the fetch-data listing.
type QuestionRow struct {
	QuestionID     int64  `json:"question_id"`
	ProgramID      int64  `json:"program_id"`
	ProgramName    string `json:"program_name"`
	CompetencyID   int64  `json:"competency_id"`
	CompetencyName string `json:"competency_name"`
	QuestionText   string `json:"questionText"`
	ChoiceID       int64  `json:"choice_id"`
	ChoiceText     string `json:"choiceText"`
	IsCorrect      bool   `json:"isCorrect"`
}
