// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package recommend

import (
	"math"
	"sort"
	"strconv"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/store"
)

// Matrix is a dense user by item rating table.
type Matrix struct {
	Users []string
	Items []int
	Rows  [][]float64

	userIndex map[string]int
}

// Pivot builds the matrix from raw ratings. Rows and columns are sorted
// ascending, absent cells are 0 and duplicate (user, anime) pairs are
// replaced by their mean.
func Pivot(ratings []store.Rating) *Matrix {
	type cell struct {
		sum   float64
		count int
	}
	cells := make(map[string]map[int]*cell)
	itemSet := make(map[int]struct{})
	for _, r := range ratings {
		row := cells[r.UserID]
		if row == nil {
			row = make(map[int]*cell)
			cells[r.UserID] = row
		}
		c := row[r.AnimeID]
		if c == nil {
			c = &cell{}
			row[r.AnimeID] = c
		}
		c.sum += r.Rating
		c.count++
		itemSet[r.AnimeID] = struct{}{}
	}

	m := &Matrix{
		Users:     make([]string, 0, len(cells)),
		Items:     make([]int, 0, len(itemSet)),
		userIndex: make(map[string]int, len(cells)),
	}
	for u := range cells {
		m.Users = append(m.Users, u)
	}
	sort.Slice(m.Users, func(i, j int) bool { return lessUserID(m.Users[i], m.Users[j]) })
	for it := range itemSet {
		m.Items = append(m.Items, it)
	}
	sort.Ints(m.Items)

	col := make(map[int]int, len(m.Items))
	for j, it := range m.Items {
		col[it] = j
	}
	m.Rows = make([][]float64, len(m.Users))
	for i, u := range m.Users {
		m.userIndex[u] = i
		row := make([]float64, len(m.Items))
		for it, c := range cells[u] {
			row[col[it]] = c.sum / float64(c.count)
		}
		m.Rows[i] = row
	}
	return m
}

// Row returns the index of userID, or -1.
func (m *Matrix) Row(userID string) int {
	if i, ok := m.userIndex[userID]; ok {
		return i
	}
	return -1
}

// Neighbors returns the rows closest to row by cosine distance, at most k-1
// of them since the row itself fills one of the k slots. Equal distances
// keep matrix order.
func (m *Matrix) Neighbors(row, k int) []string {
	type candidate struct {
		index    int
		distance float64
	}
	target := m.Rows[row]
	targetNorm := norm(target)

	candidates := make([]candidate, 0, len(m.Rows))
	for i, other := range m.Rows {
		if i == row {
			continue
		}
		candidates = append(candidates, candidate{
			index:    i,
			distance: 1 - cosine(target, other, targetNorm, norm(other)),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	if n := k - 1; n < len(candidates) {
		if n < 0 {
			n = 0
		}
		candidates = candidates[:n]
	}
	users := make([]string, len(candidates))
	for i, c := range candidates {
		users[i] = m.Users[c.index]
	}
	return users
}

// cosine is 0 whenever either vector is all zeros.
func cosine(a, b []float64, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot / (normA * normB)
}

func norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// lessUserID orders numeric ids numerically and everything else
// lexically, numeric ids first.
func lessUserID(a, b string) bool {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	switch {
	case aErr == nil && bErr == nil:
		if ai != bi {
			return ai < bi
		}
		return a < b
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	default:
		return a < b
	}
}
