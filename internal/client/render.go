// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package client

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"
)

// Format selects terminal text or HTML output.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// Theme selects the HTML page palette.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatHTML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want text or html)", s)
}

// ParseTheme validates a --theme value.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(s)); t {
	case ThemeLight, ThemeDark:
		return t, nil
	}
	return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
}

const (
	defaultImageAlt = "Anime Character"
	moreInfoText    = "Click Here for More Info"

	NoHistoryText         = "No conversation history found for this user."
	NoSuggestionsText     = "No suggestions found."
	NoRecommendationsText = "No recommendations available."

	AboutText = `MyAnimeCompanion is an anime chatbot backed by the Jikan catalog API.

Ask about a title and it answers with the synopsis, episode count, score and
airing status, plus cover art and an embedded trailer when the catalog has them.

Log in to keep a conversation history, get recommendations based on the
titles you asked about, and get recommendations from users who rated anime
the way you did.`
)

var (
	// Labeled fields in a chat response, heading level per label.
	fieldHeadings = []struct {
		label string
		tag   string
	}{
		{"Title", "h2"},
		{"Synopsis", "h3"},
		{"Episodes", "h3"},
		{"Score", "h3"},
		{"Status", "h3"},
	}

	parenURLPattern = regexp.MustCompile(`\((https?://[^\s()]+)\)`)
	markdownLink    = regexp.MustCompile(`\[([^\]]*)\]\((https?://[^\s()]+|#)\)`)
	boldPattern     = regexp.MustCompile(`\*\*([^*]+)\*\*`)
)

// Renderer turns backend replies into display text.
type Renderer struct {
	Format Format
	Theme  Theme
}

// Chat renders a chat reply with its optional image and trailer.
func (r Renderer) Chat(reply *ChatReply) string {
	if r.Format == FormatHTML {
		return r.chatHTML(reply)
	}

	var b strings.Builder
	b.WriteString(markdownLink.ReplaceAllString(boldPattern.ReplaceAllString(reply.Response, "$1"), "$1 $2"))
	if reply.ImageURL != nil && *reply.ImageURL != "" {
		b.WriteString("\nImage: " + *reply.ImageURL)
	}
	if reply.TrailerURL != nil && *reply.TrailerURL != "" {
		b.WriteString("\nTrailer: " + *reply.TrailerURL)
	}
	return b.String()
}

func (r Renderer) chatHTML(reply *ChatReply) string {
	title := defaultImageAlt
	lines := strings.Split(reply.Response, "\n")
	for i, line := range lines {
		line = html.EscapeString(line)
		for _, f := range fieldHeadings {
			prefix := "**" + f.label + ":**"
			if !strings.HasPrefix(line, prefix) {
				continue
			}
			value := strings.TrimSpace(strings.TrimPrefix(line, prefix))
			if f.label == "Title" && value != "" {
				title = value
			}
			line = fmt.Sprintf("<%s><strong>%s:</strong> %s</%s>", f.tag, f.label, value, f.tag)
			break
		}
		line = markdownLink.ReplaceAllString(line, `<a href="$2" target="_blank">`+moreInfoText+`</a>`)
		line = parenURLPattern.ReplaceAllString(line, `<a href="$1" target="_blank">`+moreInfoText+`</a>`)
		lines[i] = boldPattern.ReplaceAllString(line, "<strong>$1</strong>")
	}

	var b strings.Builder
	b.WriteString(`<div class="anime-info">`)
	b.WriteString(strings.Join(lines, "<br>"))
	b.WriteString("</div>")

	if reply.ImageURL != nil && *reply.ImageURL != "" {
		fmt.Fprintf(&b, `<div class="anime-image"><img src="%s" alt="%s"></div>`,
			html.EscapeString(*reply.ImageURL), title)
	}
	if reply.TrailerURL != nil && *reply.TrailerURL != "" {
		b.WriteString(`<div class="anime-trailer">`)
		b.WriteString(trailerPlayer(*reply.TrailerURL))
		b.WriteString("</div>")
	}
	return b.String()
}

// trailerPlayer embeds YouTube trailers in an iframe and anything else in a
// video element.
func trailerPlayer(raw string) string {
	if id := youtubeVideoID(raw); id != "" {
		return fmt.Sprintf(`<iframe src="https://www.youtube.com/embed/%s" width="560" height="315" `+
			`frameborder="0" allow="encrypted-media; picture-in-picture" allowfullscreen></iframe>`,
			url.PathEscape(id))
	}
	return fmt.Sprintf(`<video src="%s" width="560" controls></video>`, html.EscapeString(raw))
}

func youtubeVideoID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch host {
	case "youtube.com", "m.youtube.com", "youtube-nocookie.com":
		if id := u.Query().Get("v"); id != "" {
			return id
		}
		if rest, ok := strings.CutPrefix(u.Path, "/embed/"); ok {
			return strings.Trim(rest, "/")
		}
	case "youtu.be":
		return strings.Trim(u.Path, "/")
	}
	return ""
}

// Suggestions renders autocomplete titles as a numbered list.
func (r Renderer) Suggestions(titles []string) string {
	if len(titles) == 0 {
		return r.notice(NoSuggestionsText)
	}
	return r.list("Top Results", titles, true)
}

// Similar renders collaborative-filter recommendations.
func (r Renderer) Similar(recs []Recommendation) string {
	if len(recs) == 0 {
		return r.notice(NoRecommendationsText)
	}
	items := make([]string, len(recs))
	for i, rec := range recs {
		items[i] = rec.Title
	}
	return r.list("Recommended Animes", items, false)
}

// FromHistory renders history-based recommendations.
func (r Renderer) FromHistory(recs []CatalogRecommendation) string {
	items := make([]string, 0, len(recs))
	for _, rec := range recs {
		if rec.Title != "" {
			items = append(items, rec.Title)
		}
	}
	if len(items) == 0 {
		return r.notice(NoRecommendationsText)
	}
	return r.list("Recommended Animes", items, false)
}

// History renders turns as plain timestamped entries.
func (r Renderer) History(turns []Turn) string {
	if len(turns) == 0 {
		return r.notice(NoHistoryText)
	}

	entries := make([]string, len(turns))
	for i, t := range turns {
		entry := fmt.Sprintf("User: %s\nChatbot: %s\nTimestamp: %s", t.UserInput, t.Response, t.Timestamp)
		if r.Format == FormatHTML {
			entry = "<pre>" + html.EscapeString(entry) + "</pre>"
		}
		entries[i] = entry
	}

	if r.Format == FormatHTML {
		return `<div class="history">` + strings.Join(entries, "<hr>") + "</div>"
	}
	return strings.Join(entries, "\n---\n")
}

// About renders the program description.
func (r Renderer) About() string {
	if r.Format != FormatHTML {
		return AboutText
	}
	var b strings.Builder
	b.WriteString("<h2>About</h2>")
	for _, para := range strings.Split(AboutText, "\n\n") {
		b.WriteString("<p>" + html.EscapeString(strings.ReplaceAll(para, "\n", " ")) + "</p>")
	}
	return b.String()
}

// Page wraps an HTML fragment in a themed document. Text passes through.
func (r Renderer) Page(title, body string) string {
	if r.Format != FormatHTML {
		return body
	}
	theme := r.Theme
	if theme == "" {
		theme = ThemeLight
	}
	return fmt.Sprintf(pageTemplate, html.EscapeString(title), themeCSS[theme], theme, body)
}

func (r Renderer) notice(msg string) string {
	if r.Format == FormatHTML {
		return `<p class="notice">` + html.EscapeString(msg) + "</p>"
	}
	return msg
}

func (r Renderer) list(heading string, items []string, numbered bool) string {
	if r.Format == FormatHTML {
		tag := "ul"
		if numbered {
			tag = "ol"
		}
		var b strings.Builder
		fmt.Fprintf(&b, "<h2>%s</h2><%s>", html.EscapeString(heading), tag)
		for _, item := range items {
			fmt.Fprintf(&b, "<li><strong>%s</strong></li>", html.EscapeString(item))
		}
		fmt.Fprintf(&b, "</%s>", tag)
		return b.String()
	}

	var b strings.Builder
	b.WriteString(heading + ":")
	for i, item := range items {
		if numbered {
			fmt.Fprintf(&b, "\n%d. %s", i+1, item)
		} else {
			b.WriteString("\n- " + item)
		}
	}
	return b.String()
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>%s</style>
</head>
<body class="theme-%s">
%s
</body>
</html>
`

var themeCSS = map[Theme]string{
	ThemeLight: `body{background:#ffffff;color:#1f1f1f;font-family:Arial,sans-serif;line-height:1.5}` +
		`a{color:#1a5fb4}.anime-image{text-align:center}.anime-image img{max-width:100%;height:auto}` +
		`pre{white-space:pre-wrap}`,
	ThemeDark: `body{background:#0e1117;color:#fafafa;font-family:Arial,sans-serif;line-height:1.5}` +
		`a{color:#8ab4f8}.anime-image{text-align:center}.anime-image img{max-width:100%;height:auto}` +
		`pre{white-space:pre-wrap}`,
}
