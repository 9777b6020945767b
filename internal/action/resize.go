package action

// Resize sets the page viewport to Width x Height in one call.
// A zero dimension is treated the same as a missing one.
func Resize(page Page, req ResizeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	return page.SetViewport(req.Width, req.Height)
}

// Validate reports ErrSizeRequired when either dimension is zero
func (r ResizeRequest) Validate() error {
	if r.Width == 0 || r.Height == 0 {
		return ErrSizeRequired
	}
	return nil
}
