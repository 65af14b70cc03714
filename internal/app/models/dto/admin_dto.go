package dto

// CountsResponse is the admin dashboard entity totals
type CountsResponse struct {
	Users   int64 `json:"users"`
	Posts   int64 `json:"posts"`
	Reports int64 `json:"reports"`
}

// MonthlySignupsResponse is a month bucket of user registrations
type MonthlySignupsResponse struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// DailySignupsResponse is a day bucket of user registrations
type DailySignupsResponse struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}
