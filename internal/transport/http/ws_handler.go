package http

import (
	"context"
	"errors"
	"io"
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/linguachat/linguachat-server/internal/auth"
	"github.com/linguachat/linguachat-server/internal/core"
	"github.com/linguachat/linguachat-server/internal/proto"
	"github.com/linguachat/linguachat-server/internal/translate"
)

// WSHandler upgrades HTTP connections and bridges them to core.Client.
type WSHandler struct {
	hub        *core.Hub
	translator *translate.Router
	verifier   *auth.Verifier
	log        *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler. verifier may be nil when
// token checks are disabled.
func NewWSHandler(hub *core.Hub, translator *translate.Router, verifier *auth.Verifier, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{hub: hub, translator: translator, verifier: verifier, log: logger}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	client := core.NewClient(uuid.NewString())
	defer h.hub.Unregister(client)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		var inbound proto.Inbound
		if err := wsjson.Read(ctx, conn, &inbound); err != nil {
			return err
		}

		protoErr, err := h.handleInbound(ctx, client, inbound)
		if err != nil {
			h.log.Warn().Err(err).Str("conn_id", client.ID).Msg("failed to handle inbound")
			return err
		}
		if protoErr != nil {
			if writeErr := wsjson.Write(ctx, conn, proto.Outbound{
				Type:  proto.OutboundTypeError,
				Error: protoErr,
			}); writeErr != nil {
				return writeErr
			}
		}
	}
}

// handleInbound dispatches one client event against the hub. A non-nil
// proto.Error is a recoverable protocol error reported to the client;
// a non-nil error tears down the connection.
func (h *WSHandler) handleInbound(ctx context.Context, client *core.Client, inbound proto.Inbound) (*proto.Error, error) {
	if inbound.Type == proto.InboundTypeJoinUser {
		return h.handleJoinUser(client, inbound)
	}

	// Everything else requires an identified connection.
	if client.UserID == "" {
		return &proto.Error{Code: core.ErrCodeNotJoined, Msg: "identify with join-user first"}, nil
	}

	switch inbound.Type {
	case proto.InboundTypeJoinRoom:
		var data proto.RoomData
		if err := unmarshalData(inbound.Data, &data); err != nil {
			return err, nil
		}
		if data.RoomID == "" {
			return &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		history := h.hub.JoinRoom(client.UserID, data.RoomID)
		client.Deliver(&core.Event{Kind: core.EventHistory, Room: data.RoomID, Messages: history})
		return nil, nil

	case proto.InboundTypeLeaveRoom:
		var data proto.RoomData
		if err := unmarshalData(inbound.Data, &data); err != nil {
			return err, nil
		}
		// A leave for a room the user already left is a no-op.
		h.hub.LeaveRoom(client.UserID, data.RoomID)
		return nil, nil

	case proto.InboundTypeSendMessage:
		var data proto.SendMessageData
		if err := unmarshalData(inbound.Data, &data); err != nil {
			return err, nil
		}
		return h.handleSend(ctx, client, data)

	case proto.InboundTypeTyping:
		var data proto.TypingData
		if err := unmarshalData(inbound.Data, &data); err != nil {
			return err, nil
		}
		if data.RecipientID == "" {
			return &proto.Error{Code: core.ErrCodeBadRequest, Msg: "recipientId is required"}, nil
		}
		h.hub.SetTyping(client.UserID, data.RecipientID, data.IsTyping)
		return nil, nil

	default:
		return &proto.Error{Code: core.ErrCodeInvalidMessage, Msg: "unknown message type"}, nil
	}
}

func (h *WSHandler) handleJoinUser(client *core.Client, inbound proto.Inbound) (*proto.Error, error) {
	var data proto.JoinUserData
	if err := unmarshalData(inbound.Data, &data); err != nil {
		return err, nil
	}
	if data.UserID == "" {
		return &proto.Error{Code: core.ErrCodeBadRequest, Msg: "userId is required"}, nil
	}
	if client.UserID != "" {
		return &proto.Error{Code: core.ErrCodeBadRequest, Msg: "connection already identified"}, nil
	}
	if h.verifier != nil {
		userID, err := h.verifier.Verify(data.Token)
		if err != nil || userID != data.UserID {
			return &proto.Error{Code: core.ErrCodeUnauthorized, Msg: "invalid token"}, nil
		}
	}
	h.hub.Register(client, data.UserID)
	return nil, nil
}

// handleSend relays a message, translating it first when the client
// asked for a target language. Translation runs synchronously in this
// connection's read loop: it blocks only this sender and keeps the
// sender's messages in order. A failed translation relays the original
// text rather than dropping the message.
func (h *WSHandler) handleSend(ctx context.Context, client *core.Client, data proto.SendMessageData) (*proto.Error, error) {
	if data.RecipientID == "" || data.Content == "" {
		return &proto.Error{Code: core.ErrCodeBadRequest, Msg: "recipientId and content are required"}, nil
	}
	class := core.MessageClass(data.MessageClass)
	if data.MessageClass == "" {
		class = core.ClassText
	}
	if !class.Valid() {
		return &proto.Error{Code: core.ErrCodeInvalidMessage, Msg: "unknown message class"}, nil
	}

	content := data.Content
	var tr *core.Translation
	if data.TargetLang != "" && h.translator != nil {
		res, err := h.translator.Translate(ctx, translate.Request{
			Text:       data.Content,
			TargetLang: data.TargetLang,
			SourceLang: data.SourceLang,
			Class:      translate.ClassCasual,
		})
		if err != nil {
			h.log.Warn().Err(err).Str("user_id", client.UserID).Msg("message translation failed, relaying original")
		} else {
			tr = &core.Translation{
				Original:   data.Content,
				SourceLang: data.SourceLang,
				TargetLang: data.TargetLang,
			}
			content = res.TranslatedText
		}
	}

	h.hub.Send(client.UserID, data.RecipientID, content, class, tr)
	return nil, nil
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case event, ok := <-client.Events:
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				h.log.Error().Err(err).Str("conn_id", client.ID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
