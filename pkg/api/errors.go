package api

// ErrorResponse - тело любого не-2xx ответа.
// Detail - человекочитаемое сообщение, его клиент показывает как есть.
type ErrorResponse struct {
	Detail    string `json:"detail"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}
