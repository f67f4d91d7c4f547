package types

// APIResponse represents a generic API response with typed data
type APIResponse[T any] struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// HistoryRequest is the body of POST /api/v1/chat/history
type HistoryRequest struct {
	ChatID string `json:"chatId"`
	Limit  int    `json:"limit,omitempty"`
}

// Turn is one flattened chat turn as returned by the server
type Turn struct {
	Role         string `json:"role"`
	Value        string `json:"value"`
	ResponseData any    `json:"responseData,omitempty"`
}

// HistoryData is the payload of a successful history response
type HistoryData struct {
	History []Turn `json:"history"`
}
