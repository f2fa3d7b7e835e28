package apicall

// Options configures one logical call. The zero value shows both
// notifications and uses the classified error message.
type Options struct {
	// SuccessMessage is shown on success. Nothing is shown when empty.
	SuccessMessage string

	// ErrorMessage replaces the classified message on failure when non-empty.
	ErrorMessage string

	// ShowSuccessNotification gates the success notification.
	// Default: true
	ShowSuccessNotification *bool

	// ShowErrorNotification gates the error notification.
	// Default: true
	ShowErrorNotification *bool
}

// Bool returns a pointer to b, for use in Options.
func Bool(b bool) *bool {
	return &b
}

// Quiet returns Options that suppress both notifications.
func Quiet() Options {
	return Options{
		ShowSuccessNotification: Bool(false),
		ShowErrorNotification:   Bool(false),
	}
}

// resolved is the immutable form of Options captured by retry closures.
type resolved struct {
	successMessage string
	errorMessage   string
	showSuccess    bool
	showError      bool
}

func (o Options) resolve() resolved {
	r := resolved{
		successMessage: o.SuccessMessage,
		errorMessage:   o.ErrorMessage,
		showSuccess:    true,
		showError:      true,
	}
	if o.ShowSuccessNotification != nil {
		r.showSuccess = *o.ShowSuccessNotification
	}
	if o.ShowErrorNotification != nil {
		r.showError = *o.ShowErrorNotification
	}
	return r
}
