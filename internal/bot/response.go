package bot

// ResponseKind selects how a Response is delivered
type ResponseKind int

const (
	// ResponseMessage posts a new message
	ResponseMessage ResponseKind = iota + 1
	// ResponseUpdate edits the message that carried the pressed component
	ResponseUpdate
	// ResponseModal opens a modal prompt
	ResponseModal
)

// Embed colors
const (
	ColorBlue   = 0x3498db
	ColorPurple = 0x9b59b6
	ColorRed    = 0xe74c3c
)

// ButtonStyle mirrors the platform button palette
type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota + 1
	ButtonSecondary
	ButtonSuccess
	ButtonDanger
)

// Response is an outbound payload
type Response struct {
	Kind      ResponseKind
	Content   string
	Embeds    []*Embed
	Buttons   []Button
	Ephemeral bool
	Modal     *Modal
}

// Embed is a rich message block
type Embed struct {
	Title        string
	Description  string
	Color        int
	ThumbnailURL string
	Fields       []EmbedField
}

// EmbedField is one titled value of an Embed
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// AddField appends a field and returns the embed for chaining
func (e *Embed) AddField(name, value string, inline bool) *Embed {
	e.Fields = append(e.Fields, EmbedField{Name: name, Value: value, Inline: inline})
	return e
}

// Button is an interactive button routed by CustomID
type Button struct {
	CustomID string
	Label    string
	Style    ButtonStyle
	Disabled bool
}

// Modal is a form of up to five text inputs
type Modal struct {
	CustomID string
	Title    string
	Inputs   []TextInput
}

// MaxModalInputs is the platform limit of inputs per modal
const MaxModalInputs = 5

// TextInput is one modal field
type TextInput struct {
	CustomID    string
	Label       string
	Value       string
	Placeholder string
	Paragraph   bool
	Required    bool
	MaxLength   int
}

// Reply returns a public text message
func Reply(content string) *Response {
	return &Response{Kind: ResponseMessage, Content: content}
}

// Ephemeral returns a text message visible only to the invoking user
func Ephemeral(content string) *Response {
	return &Response{Kind: ResponseMessage, Content: content, Ephemeral: true}
}

// EmbedReply returns a message carrying one embed
func EmbedReply(embed *Embed, ephemeral bool) *Response {
	return &Response{Kind: ResponseMessage, Embeds: []*Embed{embed}, Ephemeral: ephemeral}
}

// Update returns an edit of the message carrying the pressed component.
// Buttons not listed are removed.
func Update(content string, embeds ...*Embed) *Response {
	return &Response{Kind: ResponseUpdate, Content: content, Embeds: embeds}
}

// ShowModal returns a modal prompt
func ShowModal(m *Modal) *Response {
	return &Response{Kind: ResponseModal, Modal: m}
}

// WithButtons attaches buttons to a message or update
func (r *Response) WithButtons(buttons ...Button) *Response {
	r.Buttons = append(r.Buttons, buttons...)
	return r
}
