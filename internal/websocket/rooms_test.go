package websocket

import "testing"

func TestPairRoomCanonical(t *testing.T) {
	tests := []struct {
		name string
		a, b uint
		want string
	}{
		{name: "ordered", a: 1, b: 2, want: "1:2"},
		{name: "reversed", a: 2, b: 1, want: "1:2"},
		{name: "numeric not lexicographic", a: 10, b: 9, want: "9:10"},
		{name: "same id", a: 4, b: 4, want: "4:4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PairRoom(tt.a, tt.b); got != tt.want {
				t.Errorf("PairRoom(%d, %d) = %q, want %q", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPairRoomSymmetric(t *testing.T) {
	for a := uint(1); a <= 5; a++ {
		for b := uint(1); b <= 5; b++ {
			if PairRoom(a, b) != PairRoom(b, a) {
				t.Errorf("PairRoom(%d, %d) != PairRoom(%d, %d)", a, b, b, a)
			}
		}
	}
}

func TestScopedRooms(t *testing.T) {
	if got := UserRoom(7); got != "user:7" {
		t.Errorf("UserRoom(7) = %q", got)
	}
	if got := ChatRoom(7); got != "chat:7" {
		t.Errorf("ChatRoom(7) = %q", got)
	}
	if got := ChannelRoom(9); got != "channel:9" {
		t.Errorf("ChannelRoom(9) = %q", got)
	}
}

func TestParsePairRoom(t *testing.T) {
	tests := []struct {
		name   string
		room   string
		wantA  uint
		wantB  uint
		wantOK bool
	}{
		{name: "valid", room: "1:2", wantA: 1, wantB: 2, wantOK: true},
		{name: "order preserved", room: "5:3", wantA: 5, wantB: 3, wantOK: true},
		{name: "no separator", room: "12", wantOK: false},
		{name: "empty", room: "", wantOK: false},
		{name: "non numeric left", room: "chat:7", wantOK: false},
		{name: "non numeric right", room: "1:x", wantOK: false},
		{name: "negative", room: "-1:2", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, ok := ParsePairRoom(tt.room)
			if ok != tt.wantOK {
				t.Fatalf("ParsePairRoom(%q) ok = %v, want %v", tt.room, ok, tt.wantOK)
			}
			if ok && (a != tt.wantA || b != tt.wantB) {
				t.Errorf("ParsePairRoom(%q) = (%d, %d), want (%d, %d)", tt.room, a, b, tt.wantA, tt.wantB)
			}
		})
	}
}
