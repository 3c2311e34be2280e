package detection

import "errors"

// ErrNoComponentFound is returned when no foreground region survives the
// morphology stage, so there is nothing to select.
var ErrNoComponentFound = errors.New("no foreground component found")

// ErrInvalidLabel is returned when a bounding box is requested for a label
// that does not occur in the label map.
var ErrInvalidLabel = errors.New("label does not occur in label map")
