package ask

import "errors"

// ErrNoAskService is returned when the view has no ask service wired.
var ErrNoAskService = errors.New("ask view: ask service is not configured")
