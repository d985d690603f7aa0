package models

// EventKind classifies an inbound update
type EventKind string

const (
	KindCommand  EventKind = "command"
	KindCallback EventKind = "callback"
	KindText     EventKind = "text"
	KindPhoto    EventKind = "photo"
	KindAppData  EventKind = "app_data"
)

// Sender identifies who sent an update and where replies go
type Sender struct {
	UserID int64
	ChatID int64
}

// From returns the sender of the event
func (s Sender) From() Sender { return s }

// Event is one classified inbound update
type Event interface {
	Kind() EventKind
	From() Sender
}

// CommandEvent is a bot command such as /add. Name has no leading slash.
type CommandEvent struct {
	Sender
	Name string
	Args string
}

// CallbackEvent is an inline button press
type CallbackEvent struct {
	Sender
	QueryID string
	Data    string
}

// TextEvent is a plain text message
type TextEvent struct {
	Sender
	Text string
}

// PhotoVariant is one resolution of a delivered photo
type PhotoVariant struct {
	FileID   string
	Width    int
	Height   int
	FileSize int
}

// PhotoEvent is a photo message. Variants keep the platform's order.
type PhotoEvent struct {
	Sender
	Variants []PhotoVariant
}

// AppDataEvent carries the raw JSON sent by the embedded web app
type AppDataEvent struct {
	Sender
	Data string
}

func (CommandEvent) Kind() EventKind  { return KindCommand }
func (CallbackEvent) Kind() EventKind { return KindCallback }
func (TextEvent) Kind() EventKind     { return KindText }
func (PhotoEvent) Kind() EventKind    { return KindPhoto }
func (AppDataEvent) Kind() EventKind  { return KindAppData }

// Largest returns the variant with the biggest pixel area. On a tie the
// later variant wins, matching the platform's ascending order.
func (p PhotoEvent) Largest() (PhotoVariant, bool) {
	if len(p.Variants) == 0 {
		return PhotoVariant{}, false
	}

	best := p.Variants[0]
	for _, v := range p.Variants[1:] {
		if v.Width*v.Height >= best.Width*best.Height {
			best = v
		}
	}
	return best, true
}
