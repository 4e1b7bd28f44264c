package fldigi

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/tlf-contrib/fldigilink/internal/domain"
)

// marshalArgs converts arguments to the transport's parameter list,
// preserving order.
func marshalArgs(args []domain.Argument) ([]interface{}, error) {
	if len(args) == 0 {
		return nil, nil
	}
	params := make([]interface{}, 0, len(args))
	for i, a := range args {
		switch a.Kind() {
		case domain.ArgInt:
			v := a.IntValue()
			if v > math.MaxInt32 || v < math.MinInt32 {
				return nil, fmt.Errorf("%w: arg %d: %d overflows i4", domain.ErrArgMarshal, i, v)
			}
			params = append(params, v)
		case domain.ArgText:
			s := a.TextValue()
			if !utf8.ValidString(s) {
				return nil, fmt.Errorf("%w: arg %d: invalid UTF-8", domain.ErrArgMarshal, i)
			}
			params = append(params, s)
		default:
			return nil, fmt.Errorf("%w: arg %d: kind %s", domain.ErrArgMarshal, i, a.Kind())
		}
	}
	return params, nil
}

// decodeResult maps a transport reply onto a tagged Result.
// A nil reply is a method without a return value.
func decodeResult(v interface{}) (domain.Result, error) {
	switch x := v.(type) {
	case nil:
		return domain.Result{Kind: domain.ResultNone}, nil
	case int:
		return domain.IntResult(x), nil
	case int32:
		return domain.IntResult(int(x)), nil
	case int64:
		return domain.IntResult(int(x)), nil
	case string:
		return domain.TextResult(x), nil
	case []byte:
		return domain.BytesResult(x), nil
	default:
		return domain.Result{}, fmt.Errorf("%w: %T", domain.ErrDecodeTypeUnrecognized, v)
	}
}
