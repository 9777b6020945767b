package action

import "fmt"

// Execute runs the handler named by req.Type
func Execute(page Page, req Request) error {
	switch Kind(req.Type) {
	case KindPress:
		return Press(page, req.Press())
	case KindResize:
		return Resize(page, req.Resize())
	default:
		return fmt.Errorf("unknown action type: %s", req.Type)
	}
}

// Supported reports whether Execute handles the given action type
func Supported(actionType string) bool {
	switch Kind(actionType) {
	case KindPress, KindResize:
		return true
	}
	return false
}
