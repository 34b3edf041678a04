package event

import "testing"

func TestEmitterOrder(t *testing.T) {
	var e Emitter
	var got []int
	e.Connect(func(any) { got = append(got, 1) })
	e.Connect(func(any) { got = append(got, 2) })
	e.Emit(nil)

	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("listener order = %v, want [1 2]", got)
	}
}

func TestEmitterDisconnect(t *testing.T) {
	var e Emitter
	calls := 0
	c := e.Connect(func(any) { calls++ })
	if !c.Connected() {
		t.Fatal("expected connection to be live")
	}
	if !c.Disconnect() {
		t.Fatal("Disconnect() = false, want true")
	}
	if c.Disconnect() {
		t.Error("second Disconnect() = true, want false")
	}
	e.Emit(nil)
	if calls != 0 {
		t.Errorf("calls = %d after disconnect, want 0", calls)
	}
}

func TestEmitterDisconnectDuringEmit(t *testing.T) {
	var e Emitter
	calls := 0
	var c Connection
	c = e.Connect(func(any) {
		calls++
		c.Disconnect()
	})
	e.Emit(nil)
	e.Emit(nil)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if e.Len() != 0 {
		t.Errorf("Len() = %d, want 0", e.Len())
	}
}

func TestForeignConnection(t *testing.T) {
	var a, b Emitter
	c := a.Connect(func(any) {})
	if b.Disconnect(c) {
		t.Error("disconnecting a foreign connection should fail")
	}
	if a.Len() != 1 {
		t.Errorf("Len() = %d, want 1", a.Len())
	}
}

func TestEmitterSkipsListenerRemovedByEarlierOne(t *testing.T) {
	var e Emitter
	second := 0
	var c2 Connection
	e.Connect(func(any) { c2.Disconnect() })
	c2 = e.Connect(func(any) { second++ })
	e.Emit(nil)
	if second != 0 {
		t.Errorf("removed listener called %d times", second)
	}
}
