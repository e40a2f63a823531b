package slug

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single word", "Ethereum", "ethereum"},
		{"two words", "Hello World", "hello-world"},
		{"repeated spaces", "Hello   World", "hello-world"},
		{"dots", "Hello.World", "hello-world"},
		{"punctuation run", "Hello@#$%World", "hello-world"},
		{"leading and trailing hyphens", "-Hello World-", "hello-world"},
		{"version suffix", "Uniswap V3", "uniswap-v3"},
		{"protocol name", "Aave Protocol", "aave-protocol"},
		{"underscores", "snake_case_name", "snake-case-name"},
		{"mixed separators", "  Layer 1 -- (L1)  ", "layer-1-l1"},
		{"diacritics", "Café Société", "cafe-societe"},
		{"digits only", "1inch", "1inch"},
		{"empty", "", ""},
		{"only punctuation", "!!! --- ???", ""},
		{"only whitespace", " \t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

var slugShape = regexp.MustCompile(`^([a-z0-9]+(-[a-z0-9]+)*)?$`)

func TestSlugify_ShapeAndIdempotence(t *testing.T) {
	inputs := []string{
		"Ethereum",
		"DeFi",
		"defi",
		"Uniswap V3",
		"--Curve.fi--",
		"a  b\tc\nd",
		"Lido Staked ETH (stETH)",
		"0x Protocol",
		"1inch Network",
		"Über-Project!",
		"___",
		"MakerDAO / Sky",
	}

	for _, in := range inputs {
		out := Slugify(in)
		require.Regexp(t, slugShape, out, "slug of %q has unexpected shape", in)
		require.Equal(t, out, Slugify(out), "slug of %q is not idempotent", in)
	}
}

func TestSlugify_GroupingIsCaseInsensitive(t *testing.T) {
	require.Equal(t, Slugify("DeFi"), Slugify("defi"))
	require.Equal(t, Slugify("Layer1"), Slugify("LAYER1"))
}
