package meetme

func resetInstance() {
	instance.Store(nil)
	initialising.Store(false)
}

// waitHangups blocks until hangups issued by leave handling have finished.
func (c *Control) waitHangups() { c.hangups.Wait() }
