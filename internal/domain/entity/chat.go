package entity

// TaskResponseKey is the field name under which task/tool results attached to a
// turn travel everywhere in the system: storage column, API payload and CLI.
const TaskResponseKey = "responseData"

// Speaker tags stored in MessageTurn.Role.
const (
	RoleHuman  = "Human"
	RoleAI     = "AI"
	RoleSystem = "System"
)

// MessageTurn is one entry of a chat's content sequence. A chat is identified
// by the client chosen chat id together with its owner's user id. Seq is the position in
// the sequence and the only ordering that exists between turns.
type MessageTurn struct {
	Seq          int
	Role         string
	Value        string
	ResponseData any // nil when the turn carries no task response
}

// HasResponseData reports whether the turn carries task response data.
func (t *MessageTurn) HasResponseData() bool {
	return t.ResponseData != nil
}
