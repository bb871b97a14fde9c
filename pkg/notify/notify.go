// Package notify sends desktop notifications on phase transitions.
package notify

import (
	"fmt"
	"os"

	"github.com/gen2brain/beeep"
)

// Notifier delivers a transition notification. Implementations are fire and
// forget; failures must not reach the tick path.
type Notifier interface {
	Send(title, body string)
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Send(string, string) {}

// Desktop sends through the platform notification service.
type Desktop struct {
	AppName string
}

func (d Desktop) Send(title, body string) {
	name := d.AppName
	if name == "" {
		name = "pomo"
	}
	if err := beeep.Notify(fmt.Sprintf("%s: %s", name, title), body, ""); err != nil {
		fmt.Fprintf(os.Stderr, "notify: %v\n", err)
	}
}
