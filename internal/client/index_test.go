package client

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sifan077/GifBoard/internal/infra/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeGateway struct {
	listed    []Gif
	listErr   error
	createErr error
	created   []NewGif
	nextID    uint
}

func (g *fakeGateway) ListGifs(ctx context.Context) ([]Gif, error) {
	if g.listErr != nil {
		return nil, g.listErr
	}
	return g.listed, nil
}

func (g *fakeGateway) CreateGif(ctx context.Context, payload NewGif) (*Gif, error) {
	g.created = append(g.created, payload)
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.nextID++
	likes := 0
	if payload.Likes != nil {
		likes = *payload.Likes
	}
	return &Gif{ID: g.nextID, Name: payload.Name, URL: payload.URL, Likes: likes}, nil
}

type collectingReporter struct{ errs []error }

func (r *collectingReporter) Report(err error) { r.errs = append(r.errs, err) }

func TestIndex_MountStoresList(t *testing.T) {
	gw := &fakeGateway{listed: []Gif{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}}
	idx := NewIndex(gw, nil)

	idx.Mount(context.Background())

	assert.Len(t, idx.Gifs(), 2)
}

func TestIndex_MountFailureLeavesStateEmpty(t *testing.T) {
	reporter := &collectingReporter{}
	idx := NewIndex(&fakeGateway{listErr: &NetworkError{Status: 500, StatusText: "Internal Server Error"}}, reporter)

	idx.Mount(context.Background())

	assert.Empty(t, idx.Gifs())
	require.Len(t, reporter.errs, 1)
	assert.Equal(t, "500 (Internal Server Error)", reporter.errs[0].Error())
}

func TestForm_SubmitSuccessAddsTileAndClears(t *testing.T) {
	gw := &fakeGateway{listed: []Gif{{ID: 7, Name: "old", URL: "http://x/old.gif", Likes: 2}}}
	idx := NewIndex(gw, nil)
	idx.Mount(context.Background())

	var before bytes.Buffer
	require.NoError(t, idx.Render(&before))

	form := &Form{}
	form.Set(FieldName, "cat")
	form.Set(FieldURL, "http://x/cat.gif")
	form.Submit(context.Background(), idx)

	assert.Equal(t, Form{}, *form)

	var after bytes.Buffer
	require.NoError(t, idx.Render(&after))
	assert.Equal(t, strings.Count(before.String(), `class="gif-tile"`)+1, strings.Count(after.String(), `class="gif-tile"`))
	assert.Contains(t, after.String(), "<h2>cat</h2>")
	assert.Contains(t, after.String(), `src="http://x/cat.gif"`)
	assert.Contains(t, after.String(), "Likes: 0")

	require.Len(t, gw.created, 1)
	assert.Nil(t, gw.created[0].Likes, "likes default belongs to the server")
}

func TestForm_SubmitFailureReportsAndClears(t *testing.T) {
	reporter := &collectingReporter{}
	gw := &fakeGateway{createErr: errors.New("connection refused")}
	idx := NewIndex(gw, reporter)

	form := &Form{Name: "cat", URL: "u", Likes: "3"}
	form.Submit(context.Background(), idx)

	assert.Equal(t, Form{}, *form)
	assert.Empty(t, idx.Gifs())
	assert.Len(t, reporter.errs, 1)
	require.Len(t, gw.created, 1)
	assert.Equal(t, 3, *gw.created[0].Likes)
}

func TestForm_SubmitBadLikesReportsAndClears(t *testing.T) {
	reporter := &collectingReporter{}
	gw := &fakeGateway{}
	idx := NewIndex(gw, reporter)

	form := &Form{Name: "cat", URL: "u", Likes: "many"}
	form.Submit(context.Background(), idx)

	assert.Equal(t, Form{}, *form)
	assert.Empty(t, gw.created)
	assert.Len(t, reporter.errs, 1)
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, []Gif{{ID: 1, Name: "cat", URL: "u", Likes: 2}}))
	assert.Equal(t, "#1\tcat\t2 likes\tu\n", buf.String())
}

func TestRenderTiles_EscapesNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderTiles(&buf, []Gif{{Name: "<script>"}}))
	assert.NotContains(t, buf.String(), "<script>")
}

func TestNewIndex_NilReporterLogsThroughGlobalLogger(t *testing.T) {
	idx := NewIndex(&fakeGateway{}, nil)

	lr, ok := idx.reporter.(*LogReporter)
	require.True(t, ok)
	assert.Same(t, logger.L(), lr.logger)
}

func TestLogReporter_Report(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := NewLogReporter(zap.New(core))

	r.Report(&NetworkError{Status: 422, StatusText: "Unprocessable Entity"})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "error in fetch", entries[0].Message)
	assert.Equal(t, "422 (Unprocessable Entity)", entries[0].ContextMap()["error"])
}
