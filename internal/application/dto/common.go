package dto

// ErrorResponse cuerpo de error HTTP. Code es estable y verificable por
// máquina; Message es para humanos.
type ErrorResponse struct {
	Success bool   `json:"success"` // siempre false
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewError construye un ErrorResponse con Success en false.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Success: false, Code: code, Message: message}
}
