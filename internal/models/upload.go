package models

// SkippedLead describes one row of a bulk upload the server refused.
type SkippedLead struct {
	Row    int    `json:"row"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Reason string `json:"reason"`
}

// UploadResult is the outcome of a bulk lead upload.
type UploadResult struct {
	InsertedLeadsCount int           `json:"insertedLeadsCount"`
	SkippedLeadsCount  int           `json:"skippedLeadsCount"`
	SkippedLeads       []SkippedLead `json:"skippedLeads"`
}
