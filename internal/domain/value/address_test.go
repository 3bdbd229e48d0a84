package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"trustrace/internal/domain/value"
)

func TestParseAddress(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		address value.Address
		ens     bool
		err     error
	}{
		{
			name:    "Hex address is lowercased",
			input:   " 0xAbCdEf0123456789abcdef0123456789ABCDEF01 ",
			address: "0xabcdef0123456789abcdef0123456789abcdef01",
		},
		{name: "ENS name", input: "Vitalik.eth", address: "vitalik.eth", ens: true},
		{name: "Subdomain", input: "pay.vitalik.eth", address: "pay.vitalik.eth", ens: true},
		{name: "Short hex", input: "0x1234", err: value.ErrInvalidAddress},
		{name: "Empty", input: "", err: value.ErrInvalidAddress},
		{name: "Other TLD", input: "example.com", err: value.ErrInvalidAddress},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			address, err := value.ParseAddress(tc.input)
			if tc.err != nil {
				rq.ErrorIs(err, tc.err)
				return
			}

			rq.NoError(err)
			rq.Equal(tc.address, address)
			rq.Equal(tc.ens, address.IsENS())
		})
	}
}
