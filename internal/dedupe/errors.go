package dedupe

import "errors"

var errNilCharacter = errors.New("lookup returned no character")
