package update

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNewer(t *testing.T) {
	cases := []struct {
		current, latest string
		want            bool
	}{
		{"1.2.0", "1.3.0", true},
		{"1.2.0", "1.2.0", false},
		{"1.2.0", "1.1.0", false},
		{"1.2.9", "1.2.10", true},
		{"v1.2.0", "v1.3.0", true},
		{"dev", "1.0.0", false},
		{"", "1.0.0", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsNewer(c.current, c.latest), "IsNewer(%q, %q)", c.current, c.latest)
	}
}
