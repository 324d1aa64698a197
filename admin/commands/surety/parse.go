package surety

import (
	"fmt"
	"math"
	"strconv"

	"github.com/onflow/flight-surety/admin"
	"github.com/onflow/flight-surety/model/surety"
)

func requestMap(req *admin.CommandRequest) (map[string]any, error) {
	if req.Data == nil {
		return map[string]any{}, nil
	}
	m, ok := req.Data.(map[string]any)
	if !ok {
		return nil, admin.NewInvalidAdminReqFormatError("expected map[string]any")
	}
	return m, nil
}

func parseAddress(m map[string]any, field string) (surety.Address, error) {
	raw, ok := m[field]
	if !ok {
		return surety.EmptyAddress, admin.NewInvalidAdminReqErrorf("missing required field '%s'", field)
	}
	s, ok := raw.(string)
	if !ok {
		return surety.EmptyAddress, admin.NewInvalidAdminReqParameterError(field, "must be a hex string", raw)
	}
	address, err := surety.HexToAddress(s)
	if err != nil {
		return surety.EmptyAddress, admin.NewInvalidAdminReqParameterError(field, err.Error(), raw)
	}
	return address, nil
}

func parseString(m map[string]any, field string) (string, error) {
	raw, ok := m[field]
	if !ok {
		return "", admin.NewInvalidAdminReqErrorf("missing required field '%s'", field)
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", admin.NewInvalidAdminReqParameterError(field, "must be a non-empty string", raw)
	}
	return s, nil
}

// parseUint accepts JSON numbers and decimal strings.
func parseUint(m map[string]any, field string, max uint64) (uint64, bool, error) {
	raw, ok := m[field]
	if !ok {
		return 0, false, nil
	}

	var value uint64
	switch v := raw.(type) {
	case float64:
		if v < 0 || v != math.Trunc(v) || v > float64(max) {
			return 0, false, admin.NewInvalidAdminReqParameterError(field, fmt.Sprintf("must be an integer in [0, %d]", max), raw)
		}
		value = uint64(v)
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil || parsed > max {
			return 0, false, admin.NewInvalidAdminReqParameterError(field, fmt.Sprintf("must be an integer in [0, %d]", max), raw)
		}
		value = parsed
	default:
		return 0, false, admin.NewInvalidAdminReqParameterError(field, "must be a number or a decimal string", raw)
	}
	return value, true, nil
}

func requireUint(m map[string]any, field string, max uint64) (uint64, error) {
	value, ok, err := parseUint(m, field, max)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, admin.NewInvalidAdminReqErrorf("missing required field '%s'", field)
	}
	return value, nil
}
