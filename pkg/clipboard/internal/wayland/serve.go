//go:build linux

package wayland

import (
	"sort"
	"syscall"
)

// Serve claims the Wayland clipboard and blocks until ownership is cancelled
// by another clipboard write. Each MIME type is served on demand by writing
// its bytes to the fd the compositor hands over.
func Serve(formats map[string][]byte) error {
	c, err := connect()
	if err != nil {
		return err
	}
	defer c.close()

	dc, err := c.bindDataControl()
	if err != nil {
		return err
	}

	source := c.newID()
	if err := c.sendMsg(dc.manager, opManagerCreateSource, encodeUint32(source)); err != nil {
		return err
	}

	mimeTypes := make([]string, 0, len(formats))
	for mimeType := range formats {
		mimeTypes = append(mimeTypes, mimeType)
	}
	sort.Strings(mimeTypes)
	for _, mimeType := range mimeTypes {
		if err := c.sendMsg(source, opSourceOffer, encodeString(mimeType)); err != nil {
			return err
		}
	}

	device, err := c.getDevice(dc)
	if err != nil {
		return err
	}
	if err := c.sendMsg(device, opDeviceSetSelection, encodeUint32(source)); err != nil {
		return err
	}

	if err := c.roundtrip(func(message) error { return nil }); err != nil {
		return err
	}

	for {
		msg, err := c.readMsg()
		if err != nil {
			// Connection closed means compositor exited; treat as done.
			return nil
		}

		if msg.objectID != source {
			if msg.fd >= 0 {
				syscall.Close(msg.fd) //nolint:errcheck
			}
			continue
		}

		switch msg.opcode {
		case evSourceSend:
			mimeType, _, _ := decodeString(msg.payload)
			if msg.fd >= 0 {
				if data, ok := formats[mimeType]; ok {
					syscall.Write(msg.fd, data) //nolint:errcheck
				}
				syscall.Close(msg.fd) //nolint:errcheck
			}
		case evSourceCancelled:
			return nil
		}
	}
}
