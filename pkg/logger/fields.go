package logger

// Standard field names for consistent logging.
const (
	FieldService    = "service"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldUserID     = "user_id"
	FieldChatID     = "chat_id"
	FieldMemberNo   = "member_no"
	FieldProviderNo = "provider_no"
	FieldServiceNo  = "service_no"
	FieldSessionNo  = "session_no"
	FieldRunID      = "run_id"
)
