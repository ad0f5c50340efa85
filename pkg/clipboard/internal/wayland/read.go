//go:build linux

package wayland

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"
)

// Selection is the clipboard content as offered by its current owner.
type Selection struct {
	// Types lists the offered MIME types in the order the owner announced them.
	Types []string
	Data  map[string][]byte
}

// Read fetches the current clipboard selection. Only the MIME types for
// which want returns true are transferred; the rest are listed in Types
// without data.
func Read(ctx context.Context, want func(mimeType string) bool) (*Selection, error) {
	c, err := connect()
	if err != nil {
		return nil, err
	}
	defer c.close()

	dc, err := c.bindDataControl()
	if err != nil {
		return nil, err
	}
	device, err := c.getDevice(dc)
	if err != nil {
		return nil, err
	}

	offers := make(map[uint32][]string)
	var selection uint32
	err = c.roundtrip(func(msg message) error {
		switch {
		case msg.objectID == device && msg.opcode == evDeviceDataOffer:
			id, _, err := decodeUint32(msg.payload)
			if err == nil {
				offers[id] = nil
			}
		case msg.objectID == device && msg.opcode == evDeviceSelection:
			selection, _, _ = decodeUint32(msg.payload)
		default:
			if _, known := offers[msg.objectID]; known && msg.opcode == evOfferOffer {
				mimeType, _, err := decodeString(msg.payload)
				if err == nil {
					offers[msg.objectID] = append(offers[msg.objectID], mimeType)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sel := &Selection{Data: make(map[string][]byte)}
	if selection == 0 {
		return sel, nil
	}
	sel.Types = offers[selection]

	for _, mimeType := range sel.Types {
		if !want(mimeType) {
			continue
		}
		data, err := c.receive(ctx, selection, mimeType)
		if err != nil {
			return nil, fmt.Errorf("wayland: receive %s: %w", mimeType, err)
		}
		sel.Data[mimeType] = data
	}
	return sel, nil
}

// receive asks the selection owner to write mimeType into a pipe and reads
// it until the owner closes its end.
func (c *waylandConn) receive(ctx context.Context, offer uint32, mimeType string) ([]byte, error) {
	var p [2]int
	if err := syscall.Pipe2(p[:], syscall.O_CLOEXEC); err != nil {
		return nil, err
	}
	if err := syscall.SetNonblock(p[0], true); err != nil {
		syscall.Close(p[0]) //nolint:errcheck
		syscall.Close(p[1]) //nolint:errcheck
		return nil, err
	}
	r := os.NewFile(uintptr(p[0]), "wayland-offer")
	defer r.Close()

	err := c.sendMsgWithFd(offer, opOfferReceive, encodeString(mimeType), p[1])
	syscall.Close(p[1]) //nolint:errcheck
	if err != nil {
		return nil, err
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err := r.SetReadDeadline(deadline); err != nil {
			return nil, err
		}
	}
	stop := context.AfterFunc(ctx, func() {
		r.SetReadDeadline(time.Now()) //nolint:errcheck
	})
	defer stop()

	data, err := io.ReadAll(r)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	return data, nil
}
