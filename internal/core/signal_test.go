package core

import "testing"

func TestSignalEmitOrder(t *testing.T) {
	var s Signal[int]
	var got []int

	s.Connect(func(v int) { got = append(got, v*10) })
	s.Connect(func(v int) { got = append(got, v*100) })
	s.Emit(2)

	if len(got) != 2 || got[0] != 20 || got[1] != 200 {
		t.Errorf("listeners called as %v, expected [20 200]", got)
	}
}

func TestSignalNoListeners(t *testing.T) {
	var s Signal[string]
	s.Emit("nobody") // Should not panic

	var nilSignal *Signal[string]
	nilSignal.Emit("nil") // Should not panic either
}

func TestSignalDisconnect(t *testing.T) {
	var s Signal[int]
	calls := 0
	c := s.Connect(func(int) { calls++ })

	if !s.Disconnect(c) {
		t.Fatal("Disconnect should report a registered listener")
	}
	if s.Disconnect(c) {
		t.Error("second Disconnect should report false")
	}
	s.Emit(1)
	if calls != 0 {
		t.Errorf("disconnected listener called %d times", calls)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", s.Len())
	}
}

func TestSignalDisconnectDuringEmit(t *testing.T) {
	var s Signal[int]
	var second Connection
	secondCalls := 0

	s.Connect(func(int) { s.Disconnect(second) })
	second = s.Connect(func(int) { secondCalls++ })

	// The snapshot taken at Emit still contains the second listener.
	s.Emit(1)
	if secondCalls != 1 {
		t.Errorf("second listener called %d times during first emit, expected 1", secondCalls)
	}

	s.Emit(2)
	if secondCalls != 1 {
		t.Errorf("second listener called after disconnect, total %d", secondCalls)
	}
}

func TestSignalDisconnectAll(t *testing.T) {
	var s Signal[struct{}]
	s.Connect(func(struct{}) {})
	s.Connect(func(struct{}) {})
	s.DisconnectAll()
	if s.Len() != 0 {
		t.Errorf("Len() = %d after DisconnectAll", s.Len())
	}
}
