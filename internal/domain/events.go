package domain

// 频道 topic 上的实时事件名
const (
	EventNewMessage      = "new-message"
	EventNewReaction     = "new-reaction"
	EventReactionRemoved = "reaction-removed"
	EventMessageRead     = "message-read"
)
