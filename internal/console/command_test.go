package console

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	cases := []struct {
		line string
		want Command
		err  error
	}{
		{"show_cart", Command{Action: actShowCart}, nil},
		{"  checkout  ", Command{Action: actCheckout}, nil},
		{"search_by_name red pen", Command{Action: actSearch, Term: "red pen"}, nil},
		{"search_by_name", Command{}, ErrNoTerm},
		{"show_item Widget", Command{Action: actShowItem, Term: "Widget"}, nil},
		{"add_item Widget", Command{Action: actAdd, Term: "Widget"}, nil},
		{"add_item Red Pen 3", Command{Action: actAdd, Term: "Red Pen", Quantity: 3}, nil},
		{"add_item Size 9 shoe", Command{Action: actAdd, Term: "Size 9 shoe"}, nil},
		{"add_item 7", Command{Action: actAdd, Term: "7"}, nil},
		{"add_item Widget 0", Command{}, ErrBadQuantity},
		{"remove_item Widget -2", Command{}, ErrBadQuantity},
		{"remove_item Widget", Command{Action: actRemove, Term: "Widget"}, nil},
		{"remove_item Widget 2", Command{Action: actRemove, Term: "Widget", Quantity: 2}, nil},
		{"add_item", Command{}, ErrNoName},
		{"buy Widget", Command{}, ErrUnknownAction},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			got, err := ParseLine(tc.line)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
