package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// EWMH source indication for requests coming from a pager or taskbar.
const sourcePager = 2

// atom interns name. xgbutil's request helpers panic on this library
// version (uint vs int type assertion), so messages are built by hand.
func (c *Connection) atom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to intern %s: %w", name, err)
	}
	return reply.Atom, nil
}

// sendRootMessage sends a 32-bit client message about window to the root
// window, where the window manager listens for it.
func (c *Connection) sendRootMessage(window xproto.Window, messageType string, data ...uint32) error {
	typ, err := c.atom(messageType)
	if err != nil {
		return err
	}

	payload := make([]uint32, 5)
	copy(payload, data)
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: window,
		Type:   typ,
		Data:   xproto.ClientMessageDataUnionData32New(payload),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}
