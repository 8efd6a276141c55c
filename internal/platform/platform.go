// Package platform sends desktop notifications through the host's native
// notification service.
package platform

import "time"

// AppName identifies the viewer to notification daemons.
const AppName = "folioview"

// Options configures how a notification is displayed.
type Options struct {
	// IconPath points to an image shown beside the message where the
	// platform supports it.
	IconPath string
	// Timeout is how long the notification stays visible. Zero leaves the
	// choice to the notification service.
	Timeout time.Duration
}

func (o Options) expiry() int32 {
	if o.Timeout <= 0 {
		return -1
	}
	return int32(o.Timeout / time.Millisecond)
}
