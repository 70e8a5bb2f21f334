package scheduler

import "time"

// Deadline wraps a timer aimed at an absolute wall-clock instant. Timers can
// fire marginally early, so owners must confirm expiry with Expired, which
// re-arms the timer for the remainder when the wake-up was spurious.
type Deadline struct {
	timer  *time.Timer
	target time.Time
	armed  bool
}

// NewDeadline creates a disarmed deadline.
func NewDeadline() *Deadline {
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}

	return &Deadline{timer: timer}
}

// Set arms the deadline at the given instant, replacing any previous target.
func (d *Deadline) Set(target time.Time) {
	d.drain()
	d.target = target
	d.armed = true
	d.timer.Reset(time.Until(target))
}

// Disarm stops the timer. C will not fire until the next Set.
func (d *Deadline) Disarm() {
	d.drain()
	d.armed = false
}

// C fires at or shortly before the armed target.
func (d *Deadline) C() <-chan time.Time {
	return d.timer.C
}

// Target returns the currently armed instant and whether one is armed.
func (d *Deadline) Target() (time.Time, bool) {
	return d.target, d.armed
}

// Expired confirms that the armed deadline has genuinely passed at the given
// instant. On a spurious early wake it re-arms the timer for the remainder
// and returns false.
func (d *Deadline) Expired(now time.Time) bool {
	if !d.armed {
		return false
	}

	if now.Before(d.target) {
		d.timer.Reset(d.target.Sub(now))
		return false
	}

	d.armed = false

	return true
}

func (d *Deadline) drain() {
	if !d.timer.Stop() {
		select {
		case <-d.timer.C:
		default:
		}
	}
}
