package models

import "encoding/json"

// APIResponse is the wrapper every endpoint answers with. Clients
// treat a missing Additional as a failed fetch regardless of the HTTP
// status code.
type APIResponse struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Additional json.RawMessage `json:"additional,omitempty"`
}

// CountResult is the authoritative outcome of a bulk mutation. The
// server may skip rows that changed state concurrently, so Count can
// be lower than the number of requested ids.
type CountResult struct {
	Count int `json:"count"`
}
