package vocabseed

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/runoshun/steps/internal/domain"
)

const seedJSON = `{"version":"2","themes":[{"id":"food","title":"Food","items":[{"id":"f1","fr":"pain","de":"Brot"}]}]}`

func serve(t *testing.T, handler fasthttp.RequestHandler) *fasthttp.Client {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	go func() { _ = fasthttp.Serve(ln, handler) }()
	t.Cleanup(func() { _ = ln.Close() })
	return &fasthttp.Client{
		Dial: func(string) (net.Conn, error) { return ln.Dial() },
	}
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	client := serve(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetContentType("application/json")
		ctx.SetBodyString(seedJSON)
	})

	seed, err := NewHTTPFetcher("http://seed.test/words.json", time.Second, client).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2", seed.Version)
	require.Len(t, seed.Themes, 1)
	assert.Equal(t, "Brot", seed.Themes[0].Items[0].DE)
}

func TestHTTPFetcher_Status(t *testing.T) {
	client := serve(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
	})

	_, err := NewHTTPFetcher("http://seed.test/words.json", time.Second, client).Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrVocabularyUnavailable)
}

func TestHTTPFetcher_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPFetcher("http://seed.test/words.json", time.Second, nil).Fetch(ctx)
	assert.ErrorIs(t, err, domain.ErrVocabularyUnavailable)
}

func TestFileFetcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.json")
	require.NoError(t, os.WriteFile(path, []byte(seedJSON), 0o644))

	seed, err := NewFileFetcher(path).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "food", seed.Themes[0].ID)

	_, err = NewFileFetcher(filepath.Join(t.TempDir(), "missing.json")).Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrVocabularyUnavailable)
}

func TestDecode_Rejects(t *testing.T) {
	for _, input := range []string{"", "[]", `{"version":"1","themes":[]}`} {
		_, err := Decode([]byte(input))
		assert.ErrorIs(t, err, domain.ErrVocabularyUnavailable, input)
	}
}

func TestUnconfigured(t *testing.T) {
	_, err := Unconfigured{}.Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrVocabularyUnavailable)
}
