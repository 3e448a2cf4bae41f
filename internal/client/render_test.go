// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package client

import (
	"strings"
	"testing"
)

const sampleResponse = "**Title:** Cowboy Bebop\n" +
	"**Synopsis:** Space bounty hunters.\n" +
	"**Episodes:** 26\n" +
	"**Score:** 8.75\n" +
	"**Status:** Finished Airing\n" +
	"**More info:** [MyAnimeList](https://myanimelist.net/anime/1/Cowboy_Bebop)"

func strPtr(s string) *string { return &s }

func TestRenderChatHTML(t *testing.T) {
	t.Parallel()

	r := Renderer{Format: FormatHTML}
	out := r.Chat(&ChatReply{
		Response:   sampleResponse,
		ImageURL:   strPtr("https://cdn.myanimelist.net/images/anime/4/19644.jpg"),
		TrailerURL: strPtr("https://www.youtube.com/watch?v=qig4KOK2R2g"),
	})

	wants := []string{
		"<h2><strong>Title:</strong> Cowboy Bebop</h2><br>",
		"<h3><strong>Synopsis:</strong> Space bounty hunters.</h3>",
		"<h3><strong>Episodes:</strong> 26</h3>",
		"<h3><strong>Score:</strong> 8.75</h3>",
		"<h3><strong>Status:</strong> Finished Airing</h3>",
		`<a href="https://myanimelist.net/anime/1/Cowboy_Bebop" target="_blank">Click Here for More Info</a>`,
		`<img src="https://cdn.myanimelist.net/images/anime/4/19644.jpg" alt="Cowboy Bebop">`,
		`<iframe src="https://www.youtube.com/embed/qig4KOK2R2g"`,
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "\n") {
		t.Error("newlines should become <br>")
	}
}

func TestRenderChatHTMLEscapesAndDefaults(t *testing.T) {
	t.Parallel()

	r := Renderer{Format: FormatHTML}
	out := r.Chat(&ChatReply{
		Response: "No exact match found for <script>.",
		ImageURL: strPtr("https://img/x.jpg"),
	})
	if strings.Contains(out, "<script>") {
		t.Errorf("response text not escaped: %s", out)
	}
	if !strings.Contains(out, `alt="Anime Character"`) {
		t.Errorf("image alt should fall back when there is no title: %s", out)
	}
	if strings.Contains(out, "anime-trailer") {
		t.Error("trailer rendered without a trailer url")
	}
}

func TestTrailerPlayer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=qig4KOK2R2g", `<iframe src="https://www.youtube.com/embed/qig4KOK2R2g"`},
		{"https://youtu.be/qig4KOK2R2g", `<iframe src="https://www.youtube.com/embed/qig4KOK2R2g"`},
		{"https://www.youtube-nocookie.com/embed/qig4KOK2R2g?enablejsapi=1", `<iframe src="https://www.youtube.com/embed/qig4KOK2R2g"`},
		{"https://cdn.example/trailer.mp4?a=1&b=2", `<video src="https://cdn.example/trailer.mp4?a=1&amp;b=2" width="560" controls></video>`},
	}
	for _, tt := range tests {
		if got := trailerPlayer(tt.url); !strings.HasPrefix(got, tt.want) {
			t.Errorf("trailerPlayer(%q) = %s, want prefix %s", tt.url, got, tt.want)
		}
	}
}

func TestRenderChatText(t *testing.T) {
	t.Parallel()

	r := Renderer{Format: FormatText}
	out := r.Chat(&ChatReply{Response: sampleResponse, ImageURL: strPtr("https://img/1.jpg")})

	if !strings.HasPrefix(out, "Title: Cowboy Bebop\n") {
		t.Errorf("text output should drop bold markers: %q", out)
	}
	if !strings.Contains(out, "More info: MyAnimeList https://myanimelist.net/anime/1/Cowboy_Bebop") {
		t.Errorf("link not flattened: %q", out)
	}
	if !strings.HasSuffix(out, "\nImage: https://img/1.jpg") {
		t.Errorf("image line missing: %q", out)
	}
}

func TestRenderLists(t *testing.T) {
	t.Parallel()

	text := Renderer{Format: FormatText}
	html := Renderer{Format: FormatHTML}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"suggestions text", text.Suggestions([]string{"Naruto", "Naruto: Shippuden"}),
			"Top Results:\n1. Naruto\n2. Naruto: Shippuden"},
		{"similar text", text.Similar([]Recommendation{{AnimeID: 1, Title: "Cowboy Bebop"}}),
			"Recommended Animes:\n- Cowboy Bebop"},
		{"history recs skip untitled", text.FromHistory([]CatalogRecommendation{{MalID: 1}, {MalID: 2, Title: "Trigun"}}),
			"Recommended Animes:\n- Trigun"},
		{"empty suggestions", text.Suggestions(nil), NoSuggestionsText},
		{"empty similar html", html.Similar(nil), `<p class="notice">` + NoRecommendationsText + "</p>"},
		{"similar html", html.Similar([]Recommendation{{Title: "K-On! & Friends"}}),
			"<h2>Recommended Animes</h2><ul><li><strong>K-On! &amp; Friends</strong></li></ul>"},
		{"suggestions html numbered", html.Suggestions([]string{"Monster"}),
			"<h2>Top Results</h2><ol><li><strong>Monster</strong></li></ol>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestRenderHistory(t *testing.T) {
	t.Parallel()

	turns := []Turn{
		{UserInput: "Naruto", Response: "**Title:** Naruto", Timestamp: "2026-01-02 03:04:05"},
		{UserInput: "Bleach", Response: "No exact match found for Bleach.", Timestamp: "2026-01-02 03:05:00"},
	}

	text := Renderer{Format: FormatText}.History(turns)
	want := "User: Naruto\nChatbot: **Title:** Naruto\nTimestamp: 2026-01-02 03:04:05\n---\n" +
		"User: Bleach\nChatbot: No exact match found for Bleach.\nTimestamp: 2026-01-02 03:05:00"
	if text != want {
		t.Errorf("text history = %q, want %q", text, want)
	}

	html := Renderer{Format: FormatHTML}.History(turns)
	if strings.Count(html, "<pre>") != 2 || !strings.Contains(html, "<hr>") {
		t.Errorf("html history = %s", html)
	}

	if got := (Renderer{Format: FormatText}).History(nil); got != NoHistoryText {
		t.Errorf("empty history = %q", got)
	}
}

func TestRenderPageTheme(t *testing.T) {
	t.Parallel()

	dark := Renderer{Format: FormatHTML, Theme: ThemeDark}.Page("Chat", "<p>hi</p>")
	if !strings.Contains(dark, `<body class="theme-dark">`) || !strings.Contains(dark, "#0e1117") {
		t.Errorf("dark page = %s", dark)
	}

	light := Renderer{Format: FormatHTML}.Page("Chat", "<p>hi</p>")
	if !strings.Contains(light, `<body class="theme-light">`) {
		t.Errorf("default theme should be light: %s", light)
	}

	if got := (Renderer{Format: FormatText}).Page("Chat", "plain"); got != "plain" {
		t.Errorf("text page = %q", got)
	}
}

func TestParseFormatAndTheme(t *testing.T) {
	t.Parallel()

	if f, err := ParseFormat("HTML"); err != nil || f != FormatHTML {
		t.Errorf("ParseFormat(HTML) = %q, %v", f, err)
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("ParseFormat(pdf) should fail")
	}
	if th, err := ParseTheme("dark"); err != nil || th != ThemeDark {
		t.Errorf("ParseTheme(dark) = %q, %v", th, err)
	}
	if _, err := ParseTheme("sepia"); err == nil {
		t.Error("ParseTheme(sepia) should fail")
	}
}
