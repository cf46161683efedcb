package types

// Envelopes mirror the storefront API's response wrapping.

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// MessageResponse is the body of simple mutation acknowledgements
// (delete sock, subscribe newsletter).
type MessageResponse struct {
	Message string `json:"message" validate:"required"`
}
