package http

import (
	"encoding/json"

	"github.com/linguachat/linguachat-server/internal/core"
	"github.com/linguachat/linguachat-server/internal/proto"
)

func unmarshalData(data json.RawMessage, out any) *proto.Error {
	if err := json.Unmarshal(data, out); err != nil {
		return &proto.Error{Code: core.ErrCodeBadRequest, Msg: "malformed payload"}
	}
	return nil
}

func messagePayload(msg core.Message) proto.MessagePayload {
	payload := proto.MessagePayload{
		ID:           msg.ID,
		RoomID:       msg.Room,
		SenderID:     msg.From,
		RecipientID:  msg.To,
		Content:      msg.Content,
		MessageClass: string(msg.Class),
		TS:           msg.CreatedAt.Unix(),
	}
	if msg.Translation != nil {
		payload.Original = msg.Translation.Original
		payload.SourceLang = msg.Translation.SourceLang
		payload.TargetLang = msg.Translation.TargetLang
	}
	return payload
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventMessage:
		return proto.Outbound{
			Type: proto.OutboundTypeMessage,
			Data: messagePayload(event.Message),
		}
	case core.EventTyping:
		return proto.Outbound{
			Type: proto.OutboundTypeTyping,
			Data: proto.TypingData{
				UserID:   event.User,
				IsTyping: event.Typing,
			},
		}
	case core.EventOnline:
		return proto.Outbound{
			Type: proto.OutboundTypeOnline,
			Data: proto.PresencePayload{UserID: event.User},
		}
	case core.EventOffline:
		payload := proto.PresencePayload{UserID: event.User}
		if !event.LastSeen.IsZero() {
			payload.LastSeen = event.LastSeen.Unix()
		}
		return proto.Outbound{
			Type: proto.OutboundTypeOffline,
			Data: payload,
		}
	case core.EventHistory:
		messages := make([]proto.MessagePayload, 0, len(event.Messages))
		for _, msg := range event.Messages {
			messages = append(messages, messagePayload(msg))
		}
		return proto.Outbound{
			Type: proto.OutboundTypeHistory,
			Data: proto.HistoryPayload{
				RoomID:   event.Room,
				Messages: messages,
			},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown event"}}
	}
}
