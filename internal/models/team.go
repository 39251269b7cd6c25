package models

// Team groups executives under a team lead. TeamLeadID references a
// member with the Executive role; that member cannot be removed from
// the team while they lead it.
type Team struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	ColorCode  string     `json:"colorCode"`
	TeamLeadID int64      `json:"teamLeadId"`
	Members    []Employee `json:"members,omitempty"`
}
