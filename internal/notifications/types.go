package notifications

// Parse modes understood by the messaging transport.
const (
	ParseModeHTML = "HTML"
)

// Message is a composed notification ready for delivery.
type Message struct {
	Text                  string
	ParseMode             string
	DisableWebPagePreview bool
}

// NewHTMLMessage returns a message using the HTML markup subset with link
// previews suppressed.
func NewHTMLMessage(text string) *Message {
	return &Message{
		Text:                  text,
		ParseMode:             ParseModeHTML,
		DisableWebPagePreview: true,
	}
}
