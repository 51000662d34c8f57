package audit

import "errors"

var ErrInvalidSnapshot = errors.New("audit snapshot cannot be encoded")
