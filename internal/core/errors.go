package core

import "errors"

var ErrUnsupportedAttackType = errors.New("unsupported attack type")
