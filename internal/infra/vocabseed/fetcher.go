// Package vocabseed loads the themed vocabulary document over HTTP or from a file.
package vocabseed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/runoshun/steps/internal/domain"
)

// DefaultTimeout bounds one HTTP fetch.
const DefaultTimeout = 10 * time.Second

// HTTPFetcher downloads the seed document with fasthttp.
type HTTPFetcher struct {
	client  *fasthttp.Client
	url     string
	timeout time.Duration
}

// NewHTTPFetcher creates a fetcher for url. A nil client uses a default one.
func NewHTTPFetcher(url string, timeout time.Duration, client *fasthttp.Client) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if client == nil {
		client = &fasthttp.Client{
			Name:         "steps",
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		}
	}
	return &HTTPFetcher{client: client, url: url, timeout: timeout}
}

// Fetch downloads and decodes the seed.
func (f *HTTPFetcher) Fetch(ctx context.Context) (*domain.VocabularySeed, error) {
	timeout := f.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrVocabularyUnavailable, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(f.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	if err := f.client.DoTimeout(req, resp, timeout); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrVocabularyUnavailable, err)
	}
	if code := resp.StatusCode(); code != fasthttp.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", domain.ErrVocabularyUnavailable, f.url, code)
	}
	return Decode(resp.Body())
}

// FileFetcher reads the seed document from a local file.
type FileFetcher struct {
	path string
}

// NewFileFetcher creates a fetcher for path.
func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{path: path}
}

// Fetch reads and decodes the seed.
func (f *FileFetcher) Fetch(_ context.Context) (*domain.VocabularySeed, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrVocabularyUnavailable, err)
	}
	return Decode(data)
}

// Unconfigured is used when no seed source is set.
type Unconfigured struct{}

// Fetch always fails.
func (Unconfigured) Fetch(context.Context) (*domain.VocabularySeed, error) {
	return nil, fmt.Errorf("%w: no seed_url or seed_file configured", domain.ErrVocabularyUnavailable)
}

// Decode parses a seed document. A document without themes is rejected.
func Decode(data []byte) (*domain.VocabularySeed, error) {
	var seed domain.VocabularySeed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("%w: decode seed: %v", domain.ErrVocabularyUnavailable, err)
	}
	if len(seed.Themes) == 0 {
		return nil, fmt.Errorf("%w: seed has no themes", domain.ErrVocabularyUnavailable)
	}
	return &seed, nil
}

var (
	_ domain.VocabularyFetcher = (*HTTPFetcher)(nil)
	_ domain.VocabularyFetcher = (*FileFetcher)(nil)
	_ domain.VocabularyFetcher = Unconfigured{}
)
