package assets_test

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"io/fs"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/kite/assets"
	"github.com/plus3/kite/render"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func testFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"sprites/sheet.png": {Data: pngBytes(t, 64, 16)},
		"sprites/sheet.json": {Data: []byte(`{
			"frames": [{"filename": "ship", "frame": {"x": 0, "y": 0, "w": 32, "h": 16}}],
			"meta": {"image": "sheet.png"}
		}`)},
		"sprites/broken.json": {Data: []byte(`{
			"frames": [],
			"meta": {"image": "missing.png"}
		}`)},
		"logo.png": {Data: pngBytes(t, 10, 20)},
	}
}

func TestEmbeddedFonts(t *testing.T) {
	cache := assets.NewCache(nil)

	for _, key := range []string{assets.FontRegular, assets.FontBold, assets.FontMono} {
		font, err := assets.Get[*render.Font](cache, key)
		require.NoError(t, err, key)
		assert.Equal(t, key, font.Name)
	}

	_, err := cache.GetOrLoad(assets.EmbeddedPrefix + "comic")
	assert.ErrorIs(t, err, assets.ErrUnknownKind)
}

func TestTextureAndSheet(t *testing.T) {
	cache := assets.NewCache(testFS(t))

	texture, err := assets.Get[*render.Texture](cache, "logo.png")
	require.NoError(t, err)
	w, h := texture.Size()
	assert.Equal(t, 10, w)
	assert.Equal(t, 20, h)

	sheet, err := assets.Get[*render.SpriteSheet](cache, "sprites/sheet.json")
	require.NoError(t, err)
	assert.Equal(t, "sprites/sheet.png", sheet.Image)
	assert.Equal(t, 64, sheet.Width, "size falls back to the texture")

	assert.Equal(t, []string{"logo.png", "sprites/sheet.json", "sprites/sheet.png"}, cache.Keys())
}

func TestLoadErrors(t *testing.T) {
	cache := assets.NewCache(testFS(t))

	_, err := cache.GetOrLoad("missing.png")
	assert.ErrorIs(t, err, assets.ErrLoad)
	assert.ErrorIs(t, err, fs.ErrNotExist, "the loader's error stays matchable")

	_, err = cache.GetOrLoad("sprites/broken.json")
	assert.ErrorIs(t, err, assets.ErrLoad)

	_, err = cache.GetOrLoad("notes.txt")
	assert.ErrorIs(t, err, assets.ErrUnknownKind)
	assert.ErrorIs(t, err, assets.ErrLoad)

	_, err = assets.Get[*render.Font](cache, "logo.png")
	assert.ErrorIs(t, err, assets.ErrWrongType)

	assert.NotContains(t, cache.Keys(), "missing.png", "failures are not cached")
}

func TestFailedLoadsAreRemembered(t *testing.T) {
	cache := assets.NewCache(nil)

	broken := errors.New("broken")
	loads := 0
	cache.Register(".dat", func(_ *assets.Cache, key string) (any, error) {
		loads++
		return nil, broken
	})

	for range 3 {
		_, err := cache.GetOrLoad("level.dat")
		assert.ErrorIs(t, err, assets.ErrLoad)
		assert.ErrorIs(t, err, broken)
	}
	assert.Equal(t, 1, loads)

	assert.False(t, cache.Unload("level.dat"), "a failure is not a loaded resource")
	_, _ = cache.GetOrLoad("level.dat")
	assert.Equal(t, 2, loads, "unloading forgets the failure")

	cache.Register(".dat", func(_ *assets.Cache, key string) (any, error) {
		loads++
		return key, nil
	})
	item, err := cache.GetOrLoad("level.dat")
	require.NoError(t, err, "registering a loader forgets failures")
	assert.Equal(t, "level.dat", item)
	assert.Equal(t, 3, loads)
}

func TestConcurrentLoadsShareOneLoad(t *testing.T) {
	cache := assets.NewCache(nil)

	var loads atomic.Int32
	release := make(chan struct{})
	cache.Register(".txt", func(_ *assets.Cache, key string) (any, error) {
		loads.Add(1)
		<-release
		return key, nil
	})

	var wg sync.WaitGroup
	results := make([]any, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = cache.GetOrLoad("notes.txt")
		}()
	}

	// give the goroutines a chance to join the in-flight load
	for loads.Load() == 0 {
		runtime.Gosched()
	}
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "notes.txt", r)
	}
	assert.LessOrEqual(t, loads.Load(), int32(len(results)))

	_, err := cache.GetOrLoad("notes.txt")
	require.NoError(t, err)
	before := loads.Load()
	_, _ = cache.GetOrLoad("notes.txt")
	assert.Equal(t, before, loads.Load(), "loaded resources are served from memory")
}

func TestUnload(t *testing.T) {
	cache := assets.NewCache(testFS(t))
	require.NoError(t, cache.Preload("logo.png", assets.FontMono))

	assert.True(t, cache.Unload("logo.png"))
	assert.False(t, cache.Unload("logo.png"))
	assert.Equal(t, []string{assets.FontMono}, cache.Keys())

	assert.Error(t, cache.Preload("logo.png", "nope.png"))
}
