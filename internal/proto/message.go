package proto

import "encoding/json"

// Inbound is the envelope for events coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoinUser    = "join-user"
	InboundTypeJoinRoom    = "join-room"
	InboundTypeLeaveRoom   = "leave-room"
	InboundTypeSendMessage = "send-message"
	InboundTypeTyping      = "typing"

	OutboundTypeMessage = "receive-message"
	OutboundTypeTyping  = "typing"
	OutboundTypeOnline  = "online"
	OutboundTypeOffline = "offline"
	OutboundTypeHistory = "history"
	OutboundTypeError   = "error"
)

// JoinUserData identifies the connection's user. Token is required when
// the server is configured to verify externally issued tokens.
type JoinUserData struct {
	UserID string `json:"userId"`
	Token  string `json:"token,omitempty"`
}

// RoomData names a room for join-room and leave-room.
type RoomData struct {
	RoomID string `json:"roomId"`
}

// SendMessageData is a send request from the client. TargetLang asks
// the server to translate the content before relaying it.
type SendMessageData struct {
	RecipientID  string `json:"recipientId"`
	Content      string `json:"content"`
	MessageClass string `json:"messageClass,omitempty"`
	TargetLang   string `json:"targetLang,omitempty"`
	SourceLang   string `json:"sourceLang,omitempty"`
}

// TypingData is the ephemeral typing indicator, both directions.
type TypingData struct {
	UserID      string `json:"userId,omitempty"`
	RecipientID string `json:"recipientId"`
	IsTyping    bool   `json:"isTyping"`
}

// Outbound is the envelope for events sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// MessagePayload is a relayed message on the wire.
type MessagePayload struct {
	ID           string `json:"id"`
	RoomID       string `json:"roomId"`
	SenderID     string `json:"senderId"`
	RecipientID  string `json:"recipientId"`
	Content      string `json:"content"`
	Original     string `json:"original,omitempty"`
	MessageClass string `json:"messageClass"`
	SourceLang   string `json:"sourceLang,omitempty"`
	TargetLang   string `json:"targetLang,omitempty"`
	TS           int64  `json:"ts"`
}

// PresencePayload announces an online/offline transition.
type PresencePayload struct {
	UserID   string `json:"userId"`
	LastSeen int64  `json:"lastSeen,omitempty"`
}

// HistoryPayload is the backlog reply to join-room.
type HistoryPayload struct {
	RoomID   string           `json:"roomId"`
	Messages []MessagePayload `json:"messages"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
