// Package wayland speaks just enough of the Wayland wire protocol to own or
// read the clipboard through zwlr_data_control_manager_v1.
package wayland

import (
	"encoding/binary"
	"fmt"
)

var le = binary.LittleEndian

const headerSize = 8

// message is one decoded Wayland event.
type message struct {
	objectID uint32
	opcode   uint16
	payload  []byte
	// fd is the descriptor delivered with the message via SCM_RIGHTS, or -1.
	fd int
}

// encodeMsg builds a request: object id, then opcode and total size packed
// into one word, then the arguments.
func encodeMsg(objectID uint32, opcode uint16, args []byte) []byte {
	size := uint16(headerSize + len(args))
	buf := make([]byte, size)
	le.PutUint32(buf[0:], objectID)
	le.PutUint32(buf[4:], uint32(opcode)|uint32(size)<<16)
	copy(buf[headerSize:], args)
	return buf
}

// parseMsg splits the first complete message off buf. ok is false when buf
// does not yet hold a whole message.
func parseMsg(buf []byte) (msg message, rest []byte, ok bool) {
	if len(buf) < headerSize {
		return message{}, buf, false
	}
	sizeOpcode := le.Uint32(buf[4:8])
	size := int(sizeOpcode >> 16)
	if size < headerSize || len(buf) < size {
		return message{}, buf, false
	}
	payload := make([]byte, size-headerSize)
	copy(payload, buf[headerSize:size])
	return message{
		objectID: le.Uint32(buf[0:4]),
		opcode:   uint16(sizeOpcode & 0xffff),
		payload:  payload,
		fd:       -1,
	}, buf[size:], true
}

func encodeUint32(v uint32) []byte {
	b := make([]byte, 4)
	le.PutUint32(b, v)
	return b
}

func decodeUint32(data []byte) (uint32, []byte, error) {
	if len(data) < 4 {
		return 0, data, fmt.Errorf("wayland: short uint32")
	}
	return le.Uint32(data[:4]), data[4:], nil
}

// encodeString encodes a Wayland string: uint32 length (incl. null), bytes, padding to 4-byte alignment.
func encodeString(s string) []byte {
	sBytes := append([]byte(s), 0)
	length := len(sBytes)
	padded := (length + 3) &^ 3
	buf := make([]byte, 4+padded)
	le.PutUint32(buf[0:], uint32(length))
	copy(buf[4:], sBytes)
	return buf
}

// decodeString reads a Wayland string from payload bytes.
func decodeString(data []byte) (string, []byte, error) {
	length, data, err := decodeUint32(data)
	if err != nil {
		return "", data, fmt.Errorf("wayland: short string length field")
	}
	if length == 0 {
		return "", data, nil
	}
	padded := (int(length) + 3) &^ 3
	if len(data) < padded {
		return "", data, fmt.Errorf("wayland: short string data")
	}
	s := string(data[:length-1])
	return s, data[padded:], nil
}

func concat(slices ...[]byte) []byte {
	var total int
	for _, s := range slices {
		total += len(s)
	}
	result := make([]byte, 0, total)
	for _, s := range slices {
		result = append(result, s...)
	}
	return result
}

// global is one wl_registry.global event.
type global struct {
	name    uint32
	iface   string
	version uint32
}

func decodeGlobal(payload []byte) (global, error) {
	name, rest, err := decodeUint32(payload)
	if err != nil {
		return global{}, err
	}
	iface, rest, err := decodeString(rest)
	if err != nil {
		return global{}, err
	}
	version, _, err := decodeUint32(rest)
	if err != nil {
		return global{}, err
	}
	return global{name: name, iface: iface, version: version}, nil
}

// decodeDisplayError formats a wl_display.error event.
func decodeDisplayError(payload []byte) error {
	objectID, rest, err := decodeUint32(payload)
	if err != nil {
		return fmt.Errorf("wayland: protocol error")
	}
	code, rest, err := decodeUint32(rest)
	if err != nil {
		return fmt.Errorf("wayland: protocol error on object %d", objectID)
	}
	msg, _, _ := decodeString(rest)
	return fmt.Errorf("wayland: protocol error on object %d (code %d): %s", objectID, code, msg)
}
