package bot

// Fixed tags carried by every outbound question.
const (
	RoleUser        = "user"
	ContentTypeText = "text"
	TypeQuestion    = "question"
	TypeAnswer      = "answer"
)

// Chat statuses reported by the Coze v3 API.
const (
	ChatStatusCreated        = "created"
	ChatStatusInProgress     = "in_progress"
	ChatStatusCompleted      = "completed"
	ChatStatusFailed         = "failed"
	ChatStatusRequiresAction = "requires_action"
	ChatStatusCanceled       = "canceled"
)

// EnvelopeMessage is one entry of Question.AdditionalMessages.
type EnvelopeMessage struct {
	Content     string `json:"content"`
	Role        string `json:"role"`
	ContentType string `json:"content_type"`
	Type        string `json:"type"`
}

// Question is the envelope sent to the provider for a single message.
type Question struct {
	BotID              string            `json:"bot_id"`
	UserID             string            `json:"user_id"`
	Stream             bool              `json:"stream"`
	AutoSaveHistory    bool              `json:"auto_save_history"`
	AdditionalMessages []EnvelopeMessage `json:"additional_messages"`
}

// NewQuestion builds the envelope for a user's text message.
func NewQuestion(botID, sessionID, text string) Question {
	return Question{
		BotID:           botID,
		UserID:          sessionID,
		AutoSaveHistory: true,
		AdditionalMessages: []EnvelopeMessage{{
			Content:     text,
			Role:        RoleUser,
			ContentType: ContentTypeText,
			Type:        TypeQuestion,
		}},
	}
}

// Message is one entry of a provider's message list.
type Message struct {
	ID             string `json:"id,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	ChatID         string `json:"chat_id,omitempty"`
	Role           string `json:"role,omitempty"`
	Type           string `json:"type"`
	Content        string `json:"content"`
	ContentType    string `json:"content_type,omitempty"`
}

// LastError is the error a provider attaches to a finished chat.
type LastError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// Chat is the provider's view of a single chat round.
type Chat struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversation_id"`
	BotID          string     `json:"bot_id,omitempty"`
	Status         string     `json:"status"`
	LastError      *LastError `json:"last_error,omitempty"`
}

// ResponseData is the nested "data" object some providers reply with.
type ResponseData struct {
	Content string `json:"content"`
}

// RawResponse is the loosely shaped result of a provider call. Any subset of
// the fields may be populated; Classify decides which one is the reply.
type RawResponse struct {
	Content  string        `json:"content,omitempty"`
	Data     *ResponseData `json:"data,omitempty"`
	Messages []Message     `json:"messages,omitempty"`
	Chat     *Chat         `json:"chat,omitempty"`
}
