package chat

import "errors"

var (
	errEmptyConversation = errors.New("messages are required")
	errInvalidRole       = errors.New("message roles must be user or assistant")
	errEmptyMessage      = errors.New("messages must have content")
)
