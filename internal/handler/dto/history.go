package dto

import "github.com/lvyanru/chat-history/internal/domain/entity"

// HistoryRequest 聊天历史查询请求（HTTP）
//
// 请求体可以为空；chatId 为空时返回空历史。
type HistoryRequest struct {
	ChatID string `json:"chatId,omitempty"`
	Limit  *int   `json:"limit,omitempty"` // nil 表示默认值 20
}

// FlatTurn 扁平化后的一轮对话
type FlatTurn struct {
	Role         string `json:"role"`
	Value        string `json:"value"`
	ResponseData any    `json:"responseData,omitempty"`
}

// HistoryResponse 聊天历史响应（HTTP），history 始终是数组
type HistoryResponse struct {
	History []FlatTurn `json:"history"`
}

// ToHistoryResponse flattens turns, oldest first, into the wire shape.
func ToHistoryResponse(turns []*entity.MessageTurn) *HistoryResponse {
	history := make([]FlatTurn, 0, len(turns))
	for _, t := range turns {
		flat := FlatTurn{
			Role:  t.Role,
			Value: t.Value,
		}
		if t.HasResponseData() {
			flat.ResponseData = t.ResponseData
		}
		history = append(history, flat)
	}
	return &HistoryResponse{History: history}
}
