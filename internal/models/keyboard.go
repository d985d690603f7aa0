package models

// InlineButton is one button of an inline keyboard. Exactly one of
// CallbackData or WebAppURL is set.
type InlineButton struct {
	Text         string
	CallbackData string
	WebAppURL    string
}

// CallbackButton builds a button that posts data back as a callback query
func CallbackButton(text, data string) InlineButton {
	return InlineButton{Text: text, CallbackData: data}
}

// WebAppButton builds a button that opens the embedded web app
func WebAppButton(text, url string) InlineButton {
	return InlineButton{Text: text, WebAppURL: url}
}
