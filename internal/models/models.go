package models

// Document is a schemaless record stored and returned as-is. Posts,
// announcements, feedback and static pages carry caller-defined fields, so
// the API passes their bodies through to the store untouched.
type Document = map[string]interface{}

// StatusResponse is the generic success/failure body for mutating routes.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// InsertResponse reports the id the store generated for a new document.
type InsertResponse struct {
	InsertedID string `json:"insertedId"`
}
