package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// Command layer.
	ErrBadRequest  = "E_BAD_REQUEST"
	ErrNoSelection = "E_NO_SELECTION"
	ErrConfig      = "E_CONFIG"
	ErrInvalidPage = "E_INVALID_PAGE"
	ErrIO          = "E_IO"
	ErrInternal    = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrBadRequest:      {},
	ErrNoSelection:     {},
	ErrConfig:          {},
	ErrInvalidPage:     {},
	ErrIO:              {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
