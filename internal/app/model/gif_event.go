package model

import "time"

// GifEvent is published on JetStream whenever a gif is created.
type GifEvent struct {
	ID        string    `json:"id"`
	GifID     uint      `json:"gif_id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	GifStreamName     = "GIFS"
	GifCreatedSubject = "gifs.created"
	GifStreamMaxBytes = 1024 * 1024 * 16 // 16MB
)
