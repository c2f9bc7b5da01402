package client

import (
	"fmt"
	"html/template"
	"io"
)

var tilesTmpl = template.Must(template.New("tiles").Parse(
	`{{range .}}<div class="gif-tile"><h2>{{.Name}}</h2><img src="{{.URL}}"/><p>Likes: {{.Likes}}</p></div>
{{end}}`))

// RenderTiles writes one HTML tile per gif.
func RenderTiles(w io.Writer, gifs []Gif) error {
	return tilesTmpl.Execute(w, gifs)
}

// RenderText writes one line per gif for terminals.
func RenderText(w io.Writer, gifs []Gif) error {
	for _, g := range gifs {
		if _, err := fmt.Fprintf(w, "#%d\t%s\t%d likes\t%s\n", g.ID, g.Name, g.Likes, g.URL); err != nil {
			return err
		}
	}
	return nil
}
