package bot

// NoContentReply is returned when a provider response matches no known shape.
const NoContentReply = "The bot returned no valid content."

// Shape names the response variant a reply was extracted from.
type Shape string

const (
	ShapeContent      Shape = "content"
	ShapeDataContent  Shape = "data.content"
	ShapeMessages     Shape = "messages"
	ShapeLastError    Shape = "chat.last_error"
	ShapeUnrecognized Shape = "unrecognized"
)

// Reply is one recognised variant of a provider response.
type Reply interface {
	Shape() Shape
	Text() string
}

// DirectContent is a response carrying its reply in a top-level content field.
type DirectContent struct{ Content string }

// DataContent is a response carrying its reply in data.content.
type DataContent struct{ Content string }

// MessageList is a response carrying a non-empty ordered message list.
type MessageList struct{ Messages []Message }

// ChatFailure is a finished chat that only reports last_error. Its text is
// relayed to the caller as an ordinary reply.
type ChatFailure struct{ Err LastError }

// Unrecognized is any response none of the other variants match.
type Unrecognized struct{}

func (DirectContent) Shape() Shape { return ShapeContent }
func (DataContent) Shape() Shape   { return ShapeDataContent }
func (MessageList) Shape() Shape   { return ShapeMessages }
func (ChatFailure) Shape() Shape   { return ShapeLastError }
func (Unrecognized) Shape() Shape  { return ShapeUnrecognized }

func (r DirectContent) Text() string { return r.Content }
func (r DataContent) Text() string   { return r.Content }
func (r ChatFailure) Text() string   { return r.Err.Msg }
func (Unrecognized) Text() string    { return NoContentReply }

// Text returns the content of the last answer, or of the last message when
// the list holds no answers.
func (r MessageList) Text() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Type == TypeAnswer {
			return r.Messages[i].Content
		}
	}
	return r.Messages[len(r.Messages)-1].Content
}

// Classify picks the reply variant of resp. Shapes are checked in a fixed
// priority order and the first match wins.
func Classify(resp *RawResponse) Reply {
	switch {
	case resp == nil:
		return Unrecognized{}
	case resp.Content != "":
		return DirectContent{Content: resp.Content}
	case resp.Data != nil && resp.Data.Content != "":
		return DataContent{Content: resp.Data.Content}
	case len(resp.Messages) > 0:
		return MessageList{Messages: resp.Messages}
	case resp.Chat != nil && resp.Chat.LastError != nil:
		return ChatFailure{Err: *resp.Chat.LastError}
	default:
		return Unrecognized{}
	}
}

// Normalize returns the reply string of resp.
func Normalize(resp *RawResponse) string {
	return Classify(resp).Text()
}
