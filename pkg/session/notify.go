package session

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Notification messages emitted by session operations.
const (
	MessageFieldAdded     = "Field added successfully"
	MessageFieldUpdated   = "Field updated successfully"
	MessageFieldDeleted   = "Field deleted successfully"
	MessageFormSaved      = "Form saved successfully"
	MessageFormDeleted    = "Form deleted successfully"
	MessageFormCleared    = "Form cleared successfully"
	MessageEmptyName      = "Please enter a form name"
	MessageSubmitted      = "Form submitted successfully!"
	MessageSubmitRejected = "Please fix all validation errors before submitting"
)

// Notifier receives advisory user-facing messages. Notifications never
// affect the outcome of an operation.
type Notifier interface {
	Notify(level Level, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(level Level, message string)

func (f NotifierFunc) Notify(level Level, message string) { f(level, message) }

type nopNotifier struct{}

func (nopNotifier) Notify(Level, string) {}
