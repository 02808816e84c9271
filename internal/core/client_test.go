package core

import "testing"

func TestDeliverDropsOnlyWhenBufferFull(t *testing.T) {
	c := NewClient("conn-1")
	ev := &Event{Kind: EventMessage}

	for i := 0; i < eventBufferSize; i++ {
		if !c.Deliver(ev) {
			t.Fatalf("delivery %d dropped below buffer capacity", i)
		}
	}
	if c.Deliver(ev) {
		t.Fatal("delivery beyond buffer capacity should drop")
	}

	<-c.Events
	if !c.Deliver(ev) {
		t.Fatal("delivery should resume once the consumer drains")
	}
}
