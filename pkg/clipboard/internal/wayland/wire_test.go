package wayland

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeString(t *testing.T) {
	tests := []struct {
		in      string
		wantLen int
	}{
		{"", 8},
		{"abc", 8},
		{"abcd", 12},
		{"text/plain", 16},
	}

	for _, tt := range tests {
		b := encodeString(tt.in)
		if len(b) != tt.wantLen {
			t.Errorf("encodeString(%q) length = %d, want %d", tt.in, len(b), tt.wantLen)
		}
		if len(b)%4 != 0 {
			t.Errorf("encodeString(%q) not 4-byte aligned", tt.in)
		}
		got, rest, err := decodeString(b)
		if err != nil {
			t.Fatalf("decodeString(encodeString(%q)) error = %v", tt.in, err)
		}
		if got != tt.in || len(rest) != 0 {
			t.Errorf("decodeString(encodeString(%q)) = %q, rest %d bytes", tt.in, got, len(rest))
		}
	}
}

func TestDecodeString_Short(t *testing.T) {
	if _, _, err := decodeString([]byte{1, 0}); err == nil {
		t.Error("expected error for short length field")
	}
	if _, _, err := decodeString([]byte{9, 0, 0, 0, 'a'}); err == nil {
		t.Error("expected error for short string data")
	}
}

func TestParseMsg(t *testing.T) {
	first := encodeMsg(7, 1, encodeUint32(42))
	second := encodeMsg(9, 0, encodeString("text/html"))
	stream := concat(first, second)

	msg, rest, ok := parseMsg(stream)
	if !ok {
		t.Fatal("parseMsg() did not find first message")
	}
	if msg.objectID != 7 || msg.opcode != 1 || msg.fd != -1 {
		t.Errorf("first message = %+v", msg)
	}
	if v, _, _ := decodeUint32(msg.payload); v != 42 {
		t.Errorf("first payload = %d, want 42", v)
	}

	msg, rest, ok = parseMsg(rest)
	if !ok {
		t.Fatal("parseMsg() did not find second message")
	}
	if s, _, _ := decodeString(msg.payload); s != "text/html" {
		t.Errorf("second payload = %q", s)
	}
	if len(rest) != 0 {
		t.Errorf("rest = %d bytes, want 0", len(rest))
	}
}

func TestParseMsg_Partial(t *testing.T) {
	full := encodeMsg(3, 0, encodeString("wl_seat"))
	for _, n := range []int{0, 4, 8, len(full) - 1} {
		if _, rest, ok := parseMsg(full[:n]); ok || !bytes.Equal(rest, full[:n]) {
			t.Errorf("parseMsg(%d bytes) = ok %v, want incomplete", n, ok)
		}
	}
}

func TestDecodeGlobal(t *testing.T) {
	payload := concat(encodeUint32(12), encodeString("zwlr_data_control_manager_v1"), encodeUint32(2))
	g, err := decodeGlobal(payload)
	if err != nil {
		t.Fatalf("decodeGlobal() error = %v", err)
	}
	if g.name != 12 || g.iface != "zwlr_data_control_manager_v1" || g.version != 2 {
		t.Errorf("decodeGlobal() = %+v", g)
	}

	if _, err := decodeGlobal(encodeUint32(1)); err == nil {
		t.Error("decodeGlobal() accepted truncated payload")
	}
}

func TestDecodeDisplayError(t *testing.T) {
	err := decodeDisplayError(concat(encodeUint32(5), encodeUint32(1), encodeString("invalid object")))
	if err == nil || !strings.Contains(err.Error(), "object 5") || !strings.Contains(err.Error(), "invalid object") {
		t.Errorf("decodeDisplayError() = %v", err)
	}
}
