package view

import (
	"bytes"
	"html/template"
)

// IndexPageData provides the dynamic fields required by the index template.
type IndexPageData struct {
	Title   string
	GifsURL string
}

var indexPageTmpl = template.Must(template.New("index_page").Parse(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8" />
	<meta name="viewport" content="width=device-width, initial-scale=1" />
	<title>{{.Title}}</title>
</head>
<body>
	<div id="app">
		<form id="gif-form">
			<label>Gif Name
				<input name="gifName" type="text" />
			</label>
			<label>Gif Url
				<input name="gifUrl" type="text" />
			</label>
			<label>Likes
				<input name="gifLikes" type="number" min="0" placeholder="0" />
			</label>
			<input type="submit" value="Add Gif!" />
		</form>
		<div id="gif-list"></div>
	</div>

	<script>
		(function() {
			const gifsURL = {{.GifsURL}};
			const form = document.getElementById("gif-form");
			const list = document.getElementById("gif-list");
			let gifs = [];

			// Replace window.gifboard.onError to surface failures to the user.
			window.gifboard = window.gifboard || {};
			window.gifboard.onError = window.gifboard.onError || function(error) {
				console.error("Error in Fetch: " + error.message);
			};
			const reportError = (error) => window.gifboard.onError(error);

			const tile = (gif) => {
				const div = document.createElement("div");
				div.className = "gif-tile";
				const h2 = document.createElement("h2");
				h2.textContent = gif.name;
				const img = document.createElement("img");
				img.src = gif.url;
				const p = document.createElement("p");
				p.textContent = "Likes: " + gif.likes;
				div.append(h2, img, p);
				return div;
			};

			const render = () => {
				list.replaceChildren(...gifs.map(tile));
			};

			const request = async (init) => {
				const response = await fetch(gifsURL, init);
				if (!response.ok) {
					throw new Error(response.status + " (" + response.statusText + ")");
				}
				return response.json();
			};

			const getGifs = async () => {
				try {
					gifs = await request();
					render();
				} catch (error) {
					reportError(error);
				}
			};

			const addNewGif = async (payload) => {
				try {
					const gif = await request({
						method: "POST",
						headers: {
							"Accept": "application/json",
							"Content-Type": "application/json"
						},
						body: JSON.stringify({ gif: payload })
					});
					gifs = [...gifs, gif];
					render();
				} catch (error) {
					reportError(error);
				}
			};

			form.addEventListener("submit", (event) => {
				event.preventDefault();
				const payload = {
					name: form.gifName.value,
					url: form.gifUrl.value
				};
				if (form.gifLikes.value !== "") {
					payload.likes = Number(form.gifLikes.value);
				}
				addNewGif(payload);
				form.reset();
			});

			getGifs();
		})();
	</script>
</body>
</html>
`))

// RenderIndexPage expands the index page template with the provided data.
func RenderIndexPage(data IndexPageData) (string, error) {
	if data.Title == "" {
		data.Title = "Gifs"
	}
	if data.GifsURL == "" {
		data.GifsURL = "/api/v1/gifs"
	}
	var buf bytes.Buffer
	if err := indexPageTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
