package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Field names match the inputs on the browser form.
const (
	FieldName  = "gifName"
	FieldURL   = "gifUrl"
	FieldLikes = "gifLikes"
)

// Form holds the unsubmitted field values.
type Form struct {
	Name  string
	URL   string
	Likes string
}

// Set updates one field by its input name. Unknown names are ignored.
func (f *Form) Set(field, value string) {
	switch field {
	case FieldName:
		f.Name = value
	case FieldURL:
		f.URL = value
	case FieldLikes:
		f.Likes = value
	}
}

// Clear empties every field.
func (f *Form) Clear() {
	*f = Form{}
}

// Payload converts the fields to a create request. Empty likes are left out.
func (f *Form) Payload() (NewGif, error) {
	payload := NewGif{Name: f.Name, URL: f.URL}

	if likes := strings.TrimSpace(f.Likes); likes != "" {
		n, err := strconv.Atoi(likes)
		if err != nil {
			return NewGif{}, fmt.Errorf("likes must be a whole number: %q", f.Likes)
		}
		payload.Likes = &n
	}
	return payload, nil
}

// Submit sends the form through idx and clears the fields whatever the outcome.
func (f *Form) Submit(ctx context.Context, idx *Index) {
	payload, err := f.Payload()
	f.Clear()
	if err != nil {
		idx.Report(err)
		return
	}
	idx.AddGif(ctx, payload)
}
