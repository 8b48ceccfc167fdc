package domain

// OracleRequest is one text-generation call. Context, when present, is
// embedded into the instruction by the oracle adapter; the core never
// depends on how the underlying model receives it.
type OracleRequest struct {
	Instruction string  `json:"instruction"`
	Context     string  `json:"context,omitempty"`
	UserText    string  `json:"user_text"`
	Temperature float64 `json:"temperature"`
}
