package reject_application

// DecisionRequest HTTP request model, тело необязательно
type DecisionRequest struct {
	Notes *string `json:"notes,omitempty"`
}
