package pattern

import "errors"

// ErrDecode is wrapped into every error Decode returns, so callers (the
// interpreter's step loop) can classify a pattern-decode failure without
// string matching.
var ErrDecode = errors.New("pattern: decode failed")
