// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package catalog

import "github.com/goccy/go-json"

// Anime is one record of a Jikan v4 anime search. Every field may be absent
// or null.
type Anime struct {
	MalID    int      `json:"mal_id"`
	Title    *string  `json:"title"`
	Synopsis *string  `json:"synopsis"`
	Episodes *int     `json:"episodes"`
	Score    *float64 `json:"score"`
	Status   *string  `json:"status"`
	URL      *string  `json:"url"`
	Images   Images   `json:"images"`
	Trailer  Trailer  `json:"trailer"`

	// Raw is the record exactly as the catalog returned it.
	Raw json.RawMessage `json:"-"`
}

// Images holds the per-format image sets.
type Images struct {
	JPG ImageSet `json:"jpg"`
}

// ImageSet holds the image URLs of one format.
type ImageSet struct {
	ImageURL *string `json:"image_url"`
}

// Trailer holds trailer metadata.
type Trailer struct {
	URL *string `json:"url"`
}

type searchResponse struct {
	Data []json.RawMessage `json:"data"`
}

// TitleOr returns the title, or fallback when it is missing.
func (a *Anime) TitleOr(fallback string) string {
	return stringOr(a.Title, fallback)
}

// ImageURL returns the JPG image URL, nil when absent or empty.
func (a *Anime) ImageURL() *string {
	return nonEmpty(a.Images.JPG.ImageURL)
}

// TrailerURL returns the trailer URL, nil when absent or empty.
func (a *Anime) TrailerURL() *string {
	return nonEmpty(a.Trailer.URL)
}

func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func decodeSearch(body []byte) ([]Anime, error) {
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	results := make([]Anime, 0, len(resp.Data))
	for _, raw := range resp.Data {
		var a Anime
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, err
		}
		a.Raw = raw
		results = append(results, a)
	}
	return results, nil
}
