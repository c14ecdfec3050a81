package entity

// Session is the short-lived, session-owned state carried between the search
// and booking steps: the raw last search response, pointers to the records it
// produced, and a session-scoped bearer token reused by subsequent provider
// calls. It expires with the session store TTL.
type Session struct {
	ID          string                 `json:"id"`
	Token       string                 `json:"token,omitempty"`
	SearchLogID uint                   `json:"search_log_id,omitempty"`
	SelectionID uint                   `json:"selection_id,omitempty"`
	Results     map[string]interface{} `json:"results,omitempty"`
}
