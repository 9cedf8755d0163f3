package models

// StatusResponse is the acknowledgement body of state-changing calls.
type StatusResponse struct {
	Status string `json:"Status"`
}

// ErrorResponse is written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreatedResponse reports the id of a newly created resource.
type CreatedResponse struct {
	Status string `json:"Status"`
	ID     int64  `json:"id"`
}

// UserInfoResponse is the body of GET /user.
type UserInfoResponse struct {
	Status string `json:"Status"`
	Name   string `json:"name"`
	Image  string `json:"image"`
}

// ActivitiesResponse wraps a user's full activity history.
type ActivitiesResponse struct {
	LatestActivities []Activity `json:"latestActivities"`
}

const (
	StatusSuccess        = "Success"
	StatusLoginSucceeded = "Login Successful"
)
