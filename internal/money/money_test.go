package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRupiah(t *testing.T) {
	tests := map[int64]string{
		0:         "Rp 0",
		999:       "Rp 999",
		349_900:   "Rp 349.900",
		2_999_900: "Rp 2.999.900",
		-15_000:   "-Rp 15.000",
	}
	for in, want := range tests {
		assert.Equal(t, want, Rupiah(in))
	}
}
