package types

// SuccessEnvelope wraps every successful API payload so clients can always
// unwrap the same top-level shape.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public half of an internal error: a stable machine code,
// a safe message, and optional structured details for validation failures.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every failed API response.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
