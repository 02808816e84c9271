package archive

import (
	"context"
	"testing"
	"time"

	"github.com/linguachat/linguachat-server/internal/core"
)

func TestRecordAndReadBack(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	base := time.Now()

	msgs := []core.Message{
		{
			ID: "m1", Room: "chat_u1_u2", From: "u1", To: "u2",
			Content: "hello", Class: core.ClassText, CreatedAt: base,
		},
		{
			ID: "m2", Room: "chat_u1_u2", From: "u2", To: "u1",
			Content: "bonjour", Class: core.ClassText,
			Translation: &core.Translation{Original: "hi", SourceLang: "en", TargetLang: "fr"},
			CreatedAt:   base.Add(time.Second),
		},
	}
	for _, msg := range msgs {
		if err := s.Record(ctx, msg); err != nil {
			t.Fatalf("record %s: %v", msg.ID, err)
		}
	}

	got, err := s.RoomMessages(ctx, "chat_u1_u2")
	if err != nil {
		t.Fatalf("room messages: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("archived count = %d, want 2", len(got))
	}
	if got[0].ID != "m1" || got[1].ID != "m2" {
		t.Fatalf("archive out of send order: %s, %s", got[0].ID, got[1].ID)
	}
	if got[1].Translation == nil || got[1].Translation.Original != "hi" {
		t.Fatalf("translation metadata lost: %+v", got[1].Translation)
	}
}

func TestRecordIsIdempotentOnID(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	msg := core.Message{
		ID: "m1", Room: "chat_a_b", From: "a", To: "b",
		Content: "once", Class: core.ClassText, CreatedAt: time.Now(),
	}
	if err := s.Record(ctx, msg); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if err := s.Record(ctx, msg); err != nil {
		t.Fatalf("duplicate record should be ignored: %v", err)
	}

	got, err := s.RoomMessages(ctx, "chat_a_b")
	if err != nil {
		t.Fatalf("room messages: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("archived count = %d, want 1", len(got))
	}
}
