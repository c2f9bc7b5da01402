package client

import (
	"context"
	"io"
	"sync"
)

// Gateway is the subset of API the index needs.
type Gateway interface {
	ListGifs(ctx context.Context) ([]Gif, error)
	CreateGif(ctx context.Context, payload NewGif) (*Gif, error)
}

// Index is the view state of the gif list.
type Index struct {
	api      Gateway
	reporter ErrorReporter

	mu   sync.Mutex
	gifs []Gif
}

// NewIndex returns an empty index. A nil reporter logs errors through the
// global logger.
func NewIndex(api Gateway, reporter ErrorReporter) *Index {
	if reporter == nil {
		reporter = NewLogReporter(nil)
	}
	return &Index{api: api, reporter: reporter}
}

// Mount loads the list. On failure the state is left as it was.
func (i *Index) Mount(ctx context.Context) {
	gifs, err := i.api.ListGifs(ctx)
	if err != nil {
		i.reporter.Report(err)
		return
	}

	i.mu.Lock()
	i.gifs = gifs
	i.mu.Unlock()
}

// AddGif creates payload on the server and appends the stored gif.
func (i *Index) AddGif(ctx context.Context, payload NewGif) {
	gif, err := i.api.CreateGif(ctx, payload)
	if err != nil {
		i.reporter.Report(err)
		return
	}

	i.mu.Lock()
	i.gifs = append(i.gifs, *gif)
	i.mu.Unlock()
}

// Gifs returns a snapshot of the current list.
func (i *Index) Gifs() []Gif {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]Gif, len(i.gifs))
	copy(out, i.gifs)
	return out
}

// Render writes the tiles for the current state as HTML.
func (i *Index) Render(w io.Writer) error {
	return RenderTiles(w, i.Gifs())
}

// Report forwards err to the index's reporter.
func (i *Index) Report(err error) {
	i.reporter.Report(err)
}
