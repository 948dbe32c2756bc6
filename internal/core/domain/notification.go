package domain

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a transient user-facing message (a toast on the dashboard).
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func Success(msg string) Notification { return Notification{Level: LevelSuccess, Message: msg} }
func Warning(msg string) Notification { return Notification{Level: LevelWarning, Message: msg} }
func Failure(msg string) Notification { return Notification{Level: LevelError, Message: msg} }
