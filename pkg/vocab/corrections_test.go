package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrectOCRErrors(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Panner Tikka", "Paneer Tikka"},
		{"Poneer Butter Masala", "Paneer Butter Masala"},
		{"Chiken Biriyani", "Chicken Biryani"},
		{"Butter Naan1", "Butter Naan"},
		{"Masala Dosa)", "Masala Dosa"},
		{"Momose", "Momos"},
		{"Garlic Bread", "Garlic Bread"}, // untouched
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CorrectOCRErrors(tc.in), "input %q", tc.in)
	}
}

func TestCorrectOCRErrorsCaseInsensitive(t *testing.T) {
	assert.Equal(t, "Paneer tikka", CorrectOCRErrors("panner tikka"))
}

func TestCorrectOCRErrorsGlobal(t *testing.T) {
	assert.Equal(t, "Paneer Paneer", CorrectOCRErrors("Panner Panner"))
}
