// Package hover tracks which line record is highlighted. A record is
// identified by its address, never by its field values, so two records
// with equal fields are different targets.
package hover

import (
	"github.com/example/folioview/internal/manuscript"
	"github.com/example/folioview/internal/viewport"
)

// TooltipGap is the distance, in display pixels, between the bottom of a
// hovered region and the top of its tooltip.
const TooltipGap = 10

// Listener is called after the hover target changes. line is nil when hover
// was cleared.
type Listener func(line *manuscript.LineRecord)

// Sync holds the hover target shared by the overlay, the transcription list
// and the tooltip.
type Sync struct {
	current   *manuscript.LineRecord
	listeners []Listener
}

// Set makes line the hover target. A nil line clears it. Set reports
// whether the target changed; listeners only run on a change.
func (s *Sync) Set(line *manuscript.LineRecord) bool {
	if s.current == line {
		return false
	}
	s.current = line
	for _, fn := range s.listeners {
		fn(line)
	}
	return true
}

// Clear removes the hover target.
func (s *Sync) Clear() bool { return s.Set(nil) }

func (s *Sync) Current() *manuscript.LineRecord { return s.current }

// Is reports whether line is the current target.
func (s *Sync) Is(line *manuscript.LineRecord) bool {
	return line != nil && s.current == line
}

// OnChange registers fn to run after each change.
func (s *Sync) OnChange(fn Listener) {
	s.listeners = append(s.listeners, fn)
}

// TooltipTop returns the top edge of the tooltip for line, just below the
// lowest display-space y of its region. ok is false while the natural size
// is unknown.
func TooltipTop(line manuscript.LineRecord, natural, display viewport.Size) (top float64, ok bool) {
	if !natural.Valid() {
		return 0, false
	}
	r := viewport.MapRect(line, natural, display)
	return r.Bottom() + TooltipGap, true
}
