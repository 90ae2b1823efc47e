package nscan_test

import (
	"fmt"
	"testing"

	"github.com/muir/nroute/nscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathLockStep(t *testing.T) {
	var got struct {
		Foo string
		Bar float64
	}
	src := nscan.NewPathSource("/test/:foo/route/:bar", "/test/perkele/route/32.0")
	require.NoError(t, nscan.Decode(&got, src))
	assert.Equal(t, "perkele", got.Foo)
	assert.Equal(t, 32.0, got.Bar)
}

func TestPathSegmentsAreRaw(t *testing.T) {
	var got struct{ Name string }
	src := nscan.NewPathSource("/users/:name", "/users/a.b-c~d")
	require.NoError(t, nscan.Decode(&got, src))
	assert.Equal(t, "a.b-c~d", got.Name)
}

func TestPathTailCapture(t *testing.T) {
	t.Run("multi segment suffix", func(t *testing.T) {
		var got struct{ Rest string }
		src := nscan.NewPathSource("/files/:rest", "/files/docs/2024/report.pdf")
		src.Tail = true
		require.NoError(t, nscan.Decode(&got, src))
		assert.Equal(t, "docs/2024/report.pdf", got.Rest)
	})
	t.Run("single segment suffix", func(t *testing.T) {
		var got struct{ Rest string }
		src := nscan.NewPathSource("/files/:rest", "/files/report.pdf")
		src.Tail = true
		require.NoError(t, nscan.Decode(&got, src))
		assert.Equal(t, "report.pdf", got.Rest)
	})
	t.Run("earlier dynamics stay single", func(t *testing.T) {
		var got struct {
			Bucket string
			Key    string
		}
		src := nscan.NewPathSource("/b/:bucket/o/:key", "/b/photos/o/2024/06/cat.png")
		src.Tail = true
		require.NoError(t, nscan.Decode(&got, src))
		assert.Equal(t, "photos", got.Bucket)
		assert.Equal(t, "2024/06/cat.png", got.Key)
	})
}

func TestPathPatternExhausted(t *testing.T) {
	var got struct {
		A string
		B string
	}
	src := nscan.NewPathSource("/x/:a", "/x/1")
	err := nscan.Decode(&got, src)
	require.Error(t, err)
	assert.ErrorIs(t, err, nscan.ErrUnexpectedEOF)
}

func TestPathUnconsumedDynamic(t *testing.T) {
	var got struct{ A string }
	src := nscan.NewPathSource("/x/:a/:b", "/x/1/2")
	err := nscan.Decode(&got, src)
	require.Error(t, err)
	assert.ErrorIs(t, err, nscan.ErrSyntax)
}

func TestPathRoundTrip(t *testing.T) {
	type params struct {
		Name  string
		Count int
		Score float64
		Up    bool
	}
	want := params{Name: "zl8", Count: -42, Score: 0.125, Up: true}
	path := fmt.Sprintf("/r/%s/%d/%v/%v", want.Name, want.Count, want.Score, want.Up)
	var got params
	src := nscan.NewPathSource("/r/:name/:count/:score/:up", path)
	require.NoError(t, nscan.Decode(&got, src))
	assert.Equal(t, want, got)
}
