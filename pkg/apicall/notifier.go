package apicall

// Notifier surfaces call outcomes to the user. Implementations must not panic;
// the executor treats both methods as fire-and-forget.
type Notifier interface {
	ShowSuccess(message string)
	ShowError(message string)
}

// NotifierFuncs adapts two plain callbacks to a Notifier. Nil fields are
// ignored.
type NotifierFuncs struct {
	Success func(message string)
	Error   func(message string)
}

func (f NotifierFuncs) ShowSuccess(message string) {
	if f.Success != nil {
		f.Success(message)
	}
}

func (f NotifierFuncs) ShowError(message string) {
	if f.Error != nil {
		f.Error(message)
	}
}

// Discard is a Notifier that drops every notification.
var Discard Notifier = NotifierFuncs{}
