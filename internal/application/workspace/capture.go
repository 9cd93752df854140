package workspace

import "sync"

// Capture routes pointer events to the active gesture until it is released.
// Release runs its callback exactly once however many times it is called.
type Capture struct {
	once    sync.Once
	release func()
}

// Acquire starts a capture that calls release when it ends
func Acquire(release func()) *Capture {
	return &Capture{release: release}
}

// Release ends the capture
func (c *Capture) Release() {
	if c == nil {
		return
	}
	c.once.Do(func() {
		if c.release != nil {
			c.release()
		}
	})
}
