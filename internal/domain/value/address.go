package value

import (
	"errors"
	"regexp"
	"strings"
)

var ErrInvalidAddress = errors.New("invalid address")

//nolint:gochecknoglobals
var (
	hexAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	ensNamePattern    = regexp.MustCompile(`^([a-z0-9-]+\.)+eth$`)
)

// Address is a lowercase hex wallet address or an ENS name.
type Address string

func ParseAddress(s string) (Address, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if hexAddressPattern.MatchString(s) || ensNamePattern.MatchString(s) {
		return Address(s), nil
	}

	return "", ErrInvalidAddress
}

func (a Address) IsENS() bool {
	return strings.HasSuffix(string(a), ".eth")
}

func (a Address) String() string {
	return string(a)
}
