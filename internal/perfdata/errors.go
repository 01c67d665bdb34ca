package perfdata

import (
	"errors"
	"fmt"

	"github.com/joshuapare/perfkit/internal/format"
	"github.com/joshuapare/perfkit/pkg/types"
)

func structureErr(msg string, args ...any) error {
	return &types.Error{Kind: types.ErrKindStructure, Msg: fmt.Sprintf(msg, args...)}
}

func dataErr(msg string, args ...any) error {
	return &types.Error{Kind: types.ErrKindData, Msg: fmt.Sprintf(msg, args...)}
}

func typeErr(msg string, args ...any) error {
	return &types.Error{Kind: types.ErrKindType, Msg: fmt.Sprintf(msg, args...)}
}

// wrapFormatErr maps the low-level format sentinels onto error kinds.
func wrapFormatErr(err error) error {
	switch {
	case errors.Is(err, format.ErrInvalidUnits):
		return &types.Error{Kind: types.ErrKindData, Msg: "invalid units attribute", Err: err}
	case errors.Is(err, format.ErrInvalidVariability):
		return &types.Error{Kind: types.ErrKindData, Msg: "invalid variability attribute", Err: err}
	case errors.Is(err, format.ErrInvalidTypeCode):
		return &types.Error{Kind: types.ErrKindStructure, Msg: "illegal type code", Err: err}
	case errors.Is(err, format.ErrSignatureMismatch):
		return &types.Error{Kind: types.ErrKindStructure, Msg: "not a perfdata region (bad magic)", Err: err}
	case errors.Is(err, format.ErrUnsupportedVersion):
		return &types.Error{Kind: types.ErrKindStructure, Msg: "unsupported perfdata version", Err: err}
	case errors.Is(err, format.ErrTruncated):
		return &types.Error{Kind: types.ErrKindStructure, Msg: "perfdata region truncated", Err: err}
	default:
		return &types.Error{Kind: types.ErrKindStructure, Msg: err.Error(), Err: err}
	}
}
