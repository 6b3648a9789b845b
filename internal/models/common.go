package models

// PaginationInfo represents pagination information
type PaginationInfo struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

// SelectOption is a single entry of a selection-list payload.
// Category labels are indent-prefixed to reflect tree depth.
type SelectOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// FieldError is a field-scoped validation message
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldConflict reports the persisted value of a field that diverged
// from the client's proposed value during a concurrent edit.
type FieldConflict struct {
	Field        string `json:"field"`
	CurrentValue string `json:"currentValue"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     Error  `json:"error"`
	Timestamp string `json:"timestamp,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// Error represents error details
type Error struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Field   string       `json:"field,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}
