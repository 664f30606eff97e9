package executor

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest   = "org.freedesktop.Notifications"
	notifyPath   = "/org/freedesktop/Notifications"
	notifyMethod = notifyDest + ".Notify"

	notifyTimeoutMs = 3000
)

// Notify posts a desktop notification on the session bus.
func Notify(summary, body string) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(notifyDest, dbus.ObjectPath(notifyPath))
	call := obj.Call(notifyMethod, 0,
		"runa",
		uint32(0),
		"edit-copy",
		summary,
		truncate(body, 200),
		[]string{},
		map[string]dbus.Variant{"urgency": dbus.MakeVariant(byte(0))},
		int32(notifyTimeoutMs),
	)
	if call.Err != nil {
		return fmt.Errorf("notify: %w", call.Err)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
