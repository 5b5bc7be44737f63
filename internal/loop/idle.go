package loop

import "time"

// defaultSlack is how early the idler wakes before a deadline; the remaining
// gap is covered by polling.
const defaultSlack = 500 * time.Microsecond

// Idler yields the CPU between polls without oversleeping a deadline.
type Idler struct {
	sleep func(time.Duration)
	slack time.Duration
}

func NewIdler() *Idler {
	return &Idler{sleep: time.Sleep, slack: defaultSlack}
}

// Wait sleeps for d minus the slack. Short waits return at once.
func (i *Idler) Wait(d time.Duration) {
	if d <= i.slack {
		return
	}
	i.sleep(d - i.slack)
}
