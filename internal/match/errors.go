package match

import "errors"

// ErrInvariant is wrapped into the error Match returns when it detects a
// condition that should be impossible for any pattern produced by a
// well-formed decode (spec §7's internal-invariant-violation class), as
// opposed to an ordinary match failure (ok=false, err=nil).
var ErrInvariant = errors.New("match: internal invariant violation")
