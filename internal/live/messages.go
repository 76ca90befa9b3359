package live

import "github.com/iamLuCat/portfolio/internal/viewport"

// Inbound message types
const (
	MsgLayout   = "layout"
	MsgScroll   = "scroll"
	MsgResize   = "resize"
	MsgHash     = "hash"
	MsgKey      = "key"
	MsgOpen     = "open"
	MsgClose    = "close"
	MsgLink     = "link"
	MsgNavigate = "navigate"
	MsgHome     = "home"
)

// UnknownMessage labels every unrecognised inbound type in metrics
const UnknownMessage = "unknown"

var knownMessages = map[string]bool{
	MsgLayout: true, MsgScroll: true, MsgResize: true, MsgHash: true, MsgKey: true,
	MsgOpen: true, MsgClose: true, MsgLink: true, MsgNavigate: true, MsgHome: true,
}

// messageLabel keeps the metric label set closed
func messageLabel(typ string) string {
	if knownMessages[typ] {
		return typ
	}
	return UnknownMessage
}

// Outbound event types
const (
	EventActive   = "active"
	EventReveal   = "reveal"
	EventCounter  = "counter"
	EventProgress = "progress"
	EventModal    = "modal"
	EventRoute    = "route"
	EventError    = "error"
)

// Element kinds a layout message may carry
const (
	KindReveal   = "reveal"
	KindCounter  = "counter"
	KindProgress = "progress"
)

// Rect is a client-measured extent in page coordinates
type Rect struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Element is an animated node reported by the client
type Element struct {
	ID     string  `json:"id"`
	Kind   string  `json:"kind"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`

	// reveal
	Effect    string  `json:"effect,omitempty"`
	Delay     int     `json:"delay,omitempty"` // ms
	Threshold float64 `json:"threshold,omitempty"`
	Repeat    bool    `json:"repeat,omitempty"`

	// counter
	Value string `json:"value,omitempty"`

	// progress
	Percentage int `json:"percentage,omitempty"`
	Index      int `json:"index,omitempty"`
}

// Inbound is a message from the browser
type Inbound struct {
	Type string `json:"type"`

	ScrollY        float64         `json:"scrollY,omitempty"`
	ViewportHeight float64         `json:"viewportHeight,omitempty"`
	Height         float64         `json:"height,omitempty"`
	Sections       map[string]Rect `json:"sections,omitempty"`
	Elements       []Element       `json:"elements,omitempty"`

	Hash string `json:"hash,omitempty"`
	Key  string `json:"key,omitempty"`

	Project string `json:"project,omitempty"`
	Kind    string `json:"kind,omitempty"`

	Section     string  `json:"section,omitempty"`
	ElementTop  float64 `json:"elementTop,omitempty"`
	PageYOffset float64 `json:"pageYOffset,omitempty"`
}

// Event is pushed to the browser
type Event struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`

	Section viewport.Section `json:"section,omitempty"`

	Visible bool   `json:"visible,omitempty"`
	CSS     string `json:"css,omitempty"`

	Text string `json:"text,omitempty"`
	Done bool   `json:"done,omitempty"`

	Width float64 `json:"width,omitempty"`
	Delay int64   `json:"delay,omitempty"` // ms

	Open         bool   `json:"open,omitempty"`
	Project      string `json:"project,omitempty"`
	ScrollLocked bool   `json:"scrollLocked,omitempty"`

	NotFound bool     `json:"notFound,omitempty"`
	Hash     string   `json:"hash,omitempty"`
	ScrollTo *float64 `json:"scrollTo,omitempty"`
	Reload   bool     `json:"reload,omitempty"`
	URL      string   `json:"url,omitempty"`

	Message string `json:"message,omitempty"`
}
