package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
)

const gifsPath = "/api/v1/gifs"

// Gif mirrors the JSON object returned by the API.
type Gif struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Likes int    `json:"likes"`
}

// NewGif is the payload for creating a gif. Likes is omitted when nil so the
// server applies its default.
type NewGif struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Likes *int   `json:"likes,omitempty"`
}

type createGifEnvelope struct {
	Gif NewGif `json:"gif"`
}

// NetworkError is returned for transport failures and non-2xx responses.
type NetworkError struct {
	Status     int
	StatusText string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%d (%s)", e.Status, e.StatusText)
	}
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// API talks to the gif endpoints over HTTP.
type API struct {
	http *resty.Client
}

// NewAPI returns a client rooted at baseURL, e.g. "http://localhost:8080".
func NewAPI(baseURL string) *API {
	return NewAPIWithClient(resty.New().SetBaseURL(baseURL))
}

// NewAPIWithClient wraps a preconfigured resty client.
func NewAPIWithClient(c *resty.Client) *API {
	c.SetHeader("Accept", "application/json")
	return &API{http: c}
}

// ListGifs fetches every gif, most liked first.
func (a *API) ListGifs(ctx context.Context) ([]Gif, error) {
	gifs := make([]Gif, 0)
	resp, err := a.http.R().
		SetContext(ctx).
		SetResult(&gifs).
		Get(gifsPath)
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return gifs, nil
}

// CreateGif posts payload and returns the stored gif.
func (a *API) CreateGif(ctx context.Context, payload NewGif) (*Gif, error) {
	var gif Gif
	resp, err := a.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(createGifEnvelope{Gif: payload}).
		SetResult(&gif).
		Post(gifsPath)
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &gif, nil
}

// GetGif fetches one gif by id.
func (a *API) GetGif(ctx context.Context, id uint) (*Gif, error) {
	var gif Gif
	resp, err := a.http.R().
		SetContext(ctx).
		SetResult(&gif).
		SetPathParam("id", strconv.FormatUint(uint64(id), 10)).
		Get(gifsPath + "/{id}")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &gif, nil
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return &NetworkError{Err: err}
	}
	if resp.IsError() {
		return &NetworkError{
			Status:     resp.StatusCode(),
			StatusText: http.StatusText(resp.StatusCode()),
		}
	}
	return nil
}
