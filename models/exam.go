package models

import "time"

// Room is a proctored exam room.
type Room struct {
	RoomID    int64     `json:"room_id"`
	RoomName  string    `json:"room_name" validate:"required,max=255"`
	CreatedAt time.Time `json:"created_at"`
}

// ExamResult is a finished exam attempt. RoomID is set only for attempts
// taken inside an exam room.
type ExamResult struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	RoomID       *int64    `json:"room_id,omitempty"`
	ProgramID    int64     `json:"program_id" validate:"required,gt=0"`
	CompetencyID int64     `json:"competency_id" validate:"required,gt=0"`
	StartTime    time.Time `json:"start_time" validate:"required"`
	EndTime      time.Time `json:"end_time" validate:"required,gtefield=StartTime"`
	Score        float64   `json:"score" validate:"gte=0"`
}

// Activity is one entry of a user's recent exam history, drawn from both
// practice exams and room sessions.
type Activity struct {
	UserID       int64      `json:"user_id"`
	ProgramID    int64      `json:"program_id"`
	CompetencyID int64      `json:"competency_id"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	EndTime      time.Time  `json:"end_time"`
	Score        float64    `json:"score"`
}

// LatestActivity is the dashboard summary of a user's most recent exams.
type LatestActivity struct {
	LatestActivity []Activity `json:"latestActivity"`
	Score          *float64   `json:"score"`
}

// RoomSession is an exam-room result joined with the taker and the room.
type RoomSession struct {
	ExamResult
	Name     *string `json:"name"`
	Image    *string `json:"image"`
	RoomName *string `json:"room_name"`
}
