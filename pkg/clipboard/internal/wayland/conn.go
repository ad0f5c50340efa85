//go:build linux

package wayland

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

const idDisplay uint32 = 1

// Request and event opcodes used here.
const (
	opDisplaySync        uint16 = 0
	opDisplayGetRegistry uint16 = 1
	opRegistryBind       uint16 = 0
	opCallbackDone       uint16 = 0

	evDisplayError   uint16 = 0
	evRegistryGlobal uint16 = 0

	opManagerCreateSource uint16 = 0
	opManagerGetDevice    uint16 = 1
	opSourceOffer         uint16 = 0
	opDeviceSetSelection  uint16 = 0
	opOfferReceive        uint16 = 0

	evDeviceDataOffer uint16 = 0
	evDeviceSelection uint16 = 1
	evOfferOffer      uint16 = 0
	evSourceSend      uint16 = 0
	evSourceCancelled uint16 = 1
)

const (
	ifaceSeat    = "wl_seat"
	ifaceManager = "zwlr_data_control_manager_v1"
)

// waylandConn is a buffered Wayland connection.
type waylandConn struct {
	fd         int
	inBuf      []byte
	pendingFds []int
	// lastID is the most recent client object id; ids must be allocated
	// without gaps.
	lastID uint32
}

// connect opens the compositor socket named by WAYLAND_DISPLAY.
func connect() (*waylandConn, error) {
	runtime := os.Getenv("XDG_RUNTIME_DIR")
	display := os.Getenv("WAYLAND_DISPLAY")
	if display == "" {
		display = "wayland-0"
	}
	sockPath := display
	if !filepath.IsAbs(display) {
		if runtime == "" {
			return nil, fmt.Errorf("wayland: XDG_RUNTIME_DIR not set")
		}
		sockPath = filepath.Join(runtime, display)
	}

	fd, err := syscall.Socket(syscall.AF_UNIX, syscall.SOCK_STREAM|syscall.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	if err := syscall.Connect(fd, &syscall.SockaddrUnix{Name: sockPath}); err != nil {
		syscall.Close(fd) //nolint:errcheck
		return nil, fmt.Errorf("wayland: connect %s: %w", sockPath, err)
	}
	return &waylandConn{fd: fd, lastID: idDisplay}, nil
}

func (c *waylandConn) close() {
	for _, fd := range c.pendingFds {
		syscall.Close(fd) //nolint:errcheck
	}
	syscall.Close(c.fd) //nolint:errcheck
}

func (c *waylandConn) newID() uint32 {
	c.lastID++
	return c.lastID
}

func (c *waylandConn) sendMsg(objectID uint32, opcode uint16, args []byte) error {
	_, err := syscall.Write(c.fd, encodeMsg(objectID, opcode, args))
	return err
}

// sendMsgWithFd sends a request whose fd argument travels as SCM_RIGHTS.
func (c *waylandConn) sendMsgWithFd(objectID uint32, opcode uint16, args []byte, fd int) error {
	return syscall.Sendmsg(c.fd, encodeMsg(objectID, opcode, args), syscall.UnixRights(fd), nil, 0)
}

// readMsg reads the next complete Wayland event, returning any fd from SCM_RIGHTS.
func (c *waylandConn) readMsg() (message, error) {
	for {
		if msg, rest, ok := parseMsg(c.inBuf); ok {
			c.inBuf = rest
			if len(c.pendingFds) > 0 {
				msg.fd = c.pendingFds[0]
				c.pendingFds = c.pendingFds[1:]
			}
			return msg, nil
		}

		buf := make([]byte, 4096)
		oob := make([]byte, syscall.CmsgSpace(4*8)) // room for up to 8 fds
		n, oobn, _, _, err := syscall.Recvmsg(c.fd, buf, oob, 0)
		if err != nil {
			return message{}, err
		}
		if n == 0 {
			return message{}, fmt.Errorf("wayland: connection closed")
		}
		c.inBuf = append(c.inBuf, buf[:n]...)

		if oobn > 0 {
			scms, parseErr := syscall.ParseSocketControlMessage(oob[:oobn])
			if parseErr == nil {
				for _, scm := range scms {
					rights, parseErr := syscall.ParseUnixRights(&scm)
					if parseErr == nil {
						c.pendingFds = append(c.pendingFds, rights...)
					}
				}
			}
		}
	}
}

// sync sends wl_display.sync and returns the callback id.
func (c *waylandConn) sync() (uint32, error) {
	cb := c.newID()
	return cb, c.sendMsg(idDisplay, opDisplaySync, encodeUint32(cb))
}

// roundtrip passes every event up to the completion of a sync to fn.
func (c *waylandConn) roundtrip(fn func(message) error) error {
	cb, err := c.sync()
	if err != nil {
		return err
	}
	for {
		msg, err := c.readMsg()
		if err != nil {
			return err
		}
		if msg.fd >= 0 {
			syscall.Close(msg.fd) //nolint:errcheck
		}
		switch {
		case msg.objectID == cb && msg.opcode == opCallbackDone:
			return nil
		case msg.objectID == idDisplay && msg.opcode == evDisplayError:
			return decodeDisplayError(msg.payload)
		}
		if err := fn(msg); err != nil {
			return err
		}
	}
}

// dataControl is a bound seat and data-control manager.
type dataControl struct {
	seat    uint32
	manager uint32
}

// bindDataControl binds wl_seat and zwlr_data_control_manager_v1.
func (c *waylandConn) bindDataControl() (dataControl, error) {
	registry := c.newID()
	if err := c.sendMsg(idDisplay, opDisplayGetRegistry, encodeUint32(registry)); err != nil {
		return dataControl{}, err
	}

	var seat, manager *global
	err := c.roundtrip(func(msg message) error {
		if msg.objectID != registry || msg.opcode != evRegistryGlobal {
			return nil
		}
		g, err := decodeGlobal(msg.payload)
		if err != nil {
			return nil
		}
		switch g.iface {
		case ifaceSeat:
			if seat == nil {
				seat = &g
			}
		case ifaceManager:
			manager = &g
		}
		return nil
	})
	if err != nil {
		return dataControl{}, err
	}
	if seat == nil {
		return dataControl{}, fmt.Errorf("wayland: wl_seat not found")
	}
	if manager == nil {
		return dataControl{}, fmt.Errorf("wayland: %s not found (compositor may not support wlr-data-control)", ifaceManager)
	}

	dc := dataControl{seat: c.newID()}
	// wl_registry.bind new_id encodes inline: [name][interface string][version][new_id]
	if err := c.sendMsg(registry, opRegistryBind, concat(
		encodeUint32(seat.name),
		encodeString(ifaceSeat),
		encodeUint32(1),
		encodeUint32(dc.seat),
	)); err != nil {
		return dataControl{}, err
	}

	dc.manager = c.newID()
	if err := c.sendMsg(registry, opRegistryBind, concat(
		encodeUint32(manager.name),
		encodeString(ifaceManager),
		encodeUint32(min(manager.version, 2)),
		encodeUint32(dc.manager),
	)); err != nil {
		return dataControl{}, err
	}
	return dc, nil
}

// getDevice creates a data-control device for the bound seat.
func (c *waylandConn) getDevice(dc dataControl) (uint32, error) {
	device := c.newID()
	return device, c.sendMsg(dc.manager, opManagerGetDevice, concat(
		encodeUint32(device),
		encodeUint32(dc.seat),
	))
}
