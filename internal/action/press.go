package action

import "time"

// Press simulates a single key press on the page, optionally waiting
// DelayMs milliseconds first. Errors from the page are returned as is.
func Press(page Page, req PressRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if req.DelayMs != 0 {
		if err := page.Wait(time.Duration(req.DelayMs) * time.Millisecond); err != nil {
			return err
		}
	}

	return page.Press(req.Key)
}

// Validate reports ErrKeyRequired when no key is set
func (r PressRequest) Validate() error {
	if r.Key == "" {
		return ErrKeyRequired
	}
	return nil
}
