package gabc

import (
	"github.com/jsphweid/gabc2ly/scale"
	"github.com/pkg/errors"
)

// All decode failures wrap one of these; test with errors.Is.
var (
	ErrInvalidClef           = scale.ErrInvalidClef
	ErrUnsupportedToken      = errors.New("unsupported token")
	ErrInternalInconsistency = scale.ErrInternalInconsistency
)
