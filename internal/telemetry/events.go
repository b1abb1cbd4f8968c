package telemetry

// Event names. Properties carry counts and outcomes only.
const (
	EventCommandExecuted  = "command_executed"
	EventProjectCreated   = "project_created"
	EventProjectFailed    = "project_create_failed"
	EventTaskToggled      = "task_toggled"
	EventStatusChanged    = "project_status_changed"
	EventChatMessageSent  = "chat_message_sent"
	EventChatFailed       = "chat_failed"
	EventResearchComplete = "research_complete"
	EventWorkspaceOpened  = "workspace_opened"
)
