package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType_Set(t *testing.T) {
	cases := []struct {
		plain    string
		expected Type
	}{
		{"hue", TypeHue},
		{"Hue", TypeHue},
		{"homeassistant", TypeHomeAssistant},
		{"home-assistant", TypeHomeAssistant},
		{"ha", TypeHomeAssistant},
		{"none", TypeNone},
		{"off", TypeNone},
	}
	for _, c := range cases {
		t.Run(c.plain, func(t *testing.T) {
			var instance Type
			require.NoError(t, instance.Set(c.plain))
			assert.Equal(t, c.expected, instance)
		})
	}
}

func TestType_Set_fails(t *testing.T) {
	var instance Type
	assert.Error(t, instance.Set("lava-lamp"))
}

func TestType_String_roundTrip(t *testing.T) {
	for _, expected := range AllTypes {
		var instance Type
		require.NoError(t, instance.Set(expected.String()))
		assert.Equal(t, expected, instance)
	}
}
