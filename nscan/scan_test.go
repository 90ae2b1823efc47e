package nscan_test

import (
	"testing"

	"github.com/muir/nroute/nscan"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color string

func (c *color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "red", "green", "blue":
		*c = color(text)
		return nil
	}
	return errors.Errorf("unknown color %q", string(text))
}

func TestDecodeQueryPrimitives(t *testing.T) {
	var got struct {
		S string
		I int
		N int8
		U uint16
		F float64
		G float32
		B bool
	}
	err := nscan.Decode(&got, nscan.NewQuerySource("s=hello&i=-3&n=100&u=6000&f=32.5&g=0.25&b=true"))
	require.NoError(t, err)
	assert.Equal(t, "hello", got.S)
	assert.Equal(t, -3, got.I)
	assert.Equal(t, int8(100), got.N)
	assert.Equal(t, uint16(6000), got.U)
	assert.Equal(t, 32.5, got.F)
	assert.Equal(t, float32(0.25), got.G)
	assert.True(t, got.B)
}

func TestDecodeBoolLiterals(t *testing.T) {
	cases := []struct {
		token string
		want  bool
		bad   bool
	}{
		{token: "true", want: true},
		{token: "false", want: false},
		{token: "True", bad: true},
		{token: "TRUE", bad: true},
		{token: "1", bad: true},
		{token: "", bad: true},
	}
	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			var got struct{ B bool }
			err := nscan.Decode(&got, nscan.NewQuerySource("b="+tc.token))
			if tc.bad {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.B)
		})
	}
}

func TestDecodeNumberErrors(t *testing.T) {
	t.Run("not a number", func(t *testing.T) {
		var got struct{ I int }
		err := nscan.Decode(&got, nscan.NewQuerySource("i=abc"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"abc"`)
	})
	t.Run("int8 overflow", func(t *testing.T) {
		var got struct{ N int8 }
		err := nscan.Decode(&got, nscan.NewQuerySource("n=300"))
		assert.Error(t, err)
	})
	t.Run("negative uint", func(t *testing.T) {
		var got struct{ U uint }
		err := nscan.Decode(&got, nscan.NewQuerySource("u=-1"))
		assert.Error(t, err)
	})
}

func TestDecodeTextUnmarshaller(t *testing.T) {
	t.Run("known value", func(t *testing.T) {
		var got struct{ C color }
		err := nscan.Decode(&got, nscan.NewQuerySource("c=red"))
		require.NoError(t, err)
		assert.Equal(t, color("red"), got.C)
	})
	t.Run("unknown value", func(t *testing.T) {
		var got struct{ C color }
		err := nscan.Decode(&got, nscan.NewQuerySource("c=mauve"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mauve")
	})
}

func TestDecodeOptional(t *testing.T) {
	t.Run("null leaves nil", func(t *testing.T) {
		var got struct{ F *float64 }
		err := nscan.Decode(&got, nscan.NewQuerySource("f=null"))
		require.NoError(t, err)
		assert.Nil(t, got.F)
	})
	t.Run("value allocates", func(t *testing.T) {
		var got struct{ F *float64 }
		err := nscan.Decode(&got, nscan.NewQuerySource("f=1.5"))
		require.NoError(t, err)
		require.NotNil(t, got.F)
		assert.Equal(t, 1.5, *got.F)
	})
	t.Run("optional enum", func(t *testing.T) {
		var got struct{ C *color }
		err := nscan.Decode(&got, nscan.NewQuerySource("c=blue"))
		require.NoError(t, err)
		require.NotNil(t, got.C)
		assert.Equal(t, color("blue"), *got.C)
	})
	t.Run("string null is absent, not the word", func(t *testing.T) {
		var got struct{ S *string }
		err := nscan.Decode(&got, nscan.NewQuerySource("s=null"))
		require.NoError(t, err)
		assert.Nil(t, got.S)
	})
}

func TestDecodePresenceFlag(t *testing.T) {
	t.Run("bare key sets flag", func(t *testing.T) {
		var got struct{ Verbose *struct{} }
		err := nscan.Decode(&got, nscan.NewQuerySource("verbose"))
		require.NoError(t, err)
		assert.NotNil(t, got.Verbose)
	})
	t.Run("after a value pair", func(t *testing.T) {
		var got struct {
			A       string
			Verbose *struct{}
		}
		err := nscan.Decode(&got, nscan.NewQuerySource("a=1&verbose"))
		require.NoError(t, err)
		assert.Equal(t, "1", got.A)
		assert.NotNil(t, got.Verbose)
	})
	t.Run("exhausted query leaves flag absent", func(t *testing.T) {
		var got struct {
			A       string
			Verbose *struct{}
		}
		err := nscan.Decode(&got, nscan.NewQuerySource("a=1"))
		require.NoError(t, err)
		assert.Equal(t, "1", got.A)
		assert.Nil(t, got.Verbose)
	})
	t.Run("empty query leaves flag absent", func(t *testing.T) {
		var got struct{ Verbose *struct{} }
		err := nscan.Decode(&got, nscan.NewQuerySource(""))
		require.NoError(t, err)
		assert.Nil(t, got.Verbose)
	})
}

func TestDecodeNestedRecord(t *testing.T) {
	type inner struct {
		B int
		C string
	}
	var got struct {
		A  string
		In inner
		D  int
	}
	err := nscan.Decode(&got, nscan.NewQuerySource("a=x&b=1&c=y&d=7"))
	require.NoError(t, err)
	assert.Equal(t, "x", got.A)
	assert.Equal(t, inner{B: 1, C: "y"}, got.In)
	assert.Equal(t, 7, got.D)
}

func TestDecodeEmbeddedStructFlattens(t *testing.T) {
	type page struct {
		Limit  int
		Offset int
	}
	var got struct {
		page
		Sort string
	}
	err := nscan.Decode(&got, nscan.NewQuerySource("limit=10&offset=20&sort=name"))
	require.NoError(t, err)
	assert.Equal(t, 10, got.Limit)
	assert.Equal(t, 20, got.Offset)
	assert.Equal(t, "name", got.Sort)
}

func TestDecodeSkipsUnexportedFields(t *testing.T) {
	var got struct {
		A      string
		hidden string
		C      string
	}
	err := nscan.Decode(&got, nscan.NewQuerySource("a=1&c=2"))
	require.NoError(t, err)
	assert.Equal(t, "1", got.A)
	assert.Equal(t, "", got.hidden)
	assert.Equal(t, "2", got.C)
}

func TestDecodeTargetValidation(t *testing.T) {
	src := nscan.NewQuerySource("")
	assert.Error(t, nscan.Decode(nil, src))
	var s struct{}
	assert.Error(t, nscan.Decode(s, src))
	var i int
	assert.Error(t, nscan.Decode(&i, src))
	var p *struct{}
	assert.Error(t, nscan.Decode(p, src))
}
