// Package assistant implements the AI quick-action pipeline: prompt
// construction, streaming consumption of a chat-completion endpoint,
// shape validation of returned JSON and fan-out persistence of results.
package assistant

// Task identifies one quick action.
type Task string

const (
	TaskFormatScript Task = "format-script"
	TaskBreakdown    Task = "generate-breakdown"
	TaskShotlist     Task = "generate-shotlist"
	TaskCallsheet    Task = "generate-callsheet"
)

// ValidTask reports whether t is one of the four known quick actions.
func ValidTask(t Task) bool {
	switch t {
	case TaskFormatScript, TaskBreakdown, TaskShotlist, TaskCallsheet:
		return true
	}
	return false
}

// Role of one conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of an assistant conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
