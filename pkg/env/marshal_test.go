package env

import (
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type botSettings struct {
	Token   string `env:"TOKEN,required"`
	OwnerID int64  `env:"OWNER_ID"`
}

type settings struct {
	Name     string      `env:"NAME"`
	Port     int         `env:"PORT" envDefault:"8080"`
	Ratio    float64     `env:"RATIO"`
	Debug    bool        `env:"DEBUG"`
	Bot      botSettings `envPrefix:"BOT_"`
	Untagged string
	hidden   string `env:"HIDDEN"`
}

func TestMarshalEnv(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{
			name:     "zero values are skipped",
			input:    &settings{},
			expected: "",
		},
		{
			name: "field order and nested prefix",
			input: &settings{
				Name:     "inspire",
				Port:     9000,
				Ratio:    0.5,
				Debug:    true,
				Bot:      botSettings{Token: "123:abc", OwnerID: 42},
				Untagged: "x",
				hidden:   "y",
			},
			expected: "NAME=inspire\nPORT=9000\nRATIO=0.5\nDEBUG=true\nBOT_TOKEN=123:abc\nBOT_OWNER_ID=42\n",
		},
		{
			name:     "struct value is accepted",
			input:    settings{Name: "plain"},
			expected: "NAME=plain\n",
		},
		{
			name:     "spaces are single quoted",
			input:    &settings{Name: "my bot"},
			expected: "NAME='my bot'\n",
		},
		{
			name:     "line breaks are double quoted",
			input:    &settings{Name: "a\nb"},
			expected: "NAME=\"a\\nb\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalEnv(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMarshalEnv_NotStruct(t *testing.T) {
	var nilSettings *settings
	for _, in := range []any{42, "text", nilSettings} {
		_, err := MarshalEnv(in)
		assert.ErrorIs(t, err, ErrNotStruct)
	}
}

func TestMarshalEnv_ReadBackByGodotenv(t *testing.T) {
	values := []string{
		"plain",
		"with spaces",
		"sk-abc#123",
		"$HOME stays literal",
		"two\nlines",
	}

	for _, want := range values {
		t.Run(want, func(t *testing.T) {
			out, err := MarshalEnv(&settings{Name: want})
			require.NoError(t, err)

			parsed, err := godotenv.Unmarshal(out)
			require.NoError(t, err)
			assert.Equal(t, want, parsed["NAME"])
		})
	}
}
