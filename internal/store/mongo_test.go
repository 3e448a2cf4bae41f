// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package store

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestRatingUserFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		userID     string
		want       interface{}
		wantLegacy bool
	}{
		{"42", bson.M{"$in": bson.A{"42", int64(42)}}, true},
		{"64b7f0c2a1b2c3d4e5f60718", "64b7f0c2a1b2c3d4e5f60718", false},
		{"007", "007", false},
		{"-3", bson.M{"$in": bson.A{"-3", int64(-3)}}, true},
	}
	for _, tt := range tests {
		got, legacy := ratingUserFilter(tt.userID)
		if legacy != tt.wantLegacy || !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ratingUserFilter(%q) = %v, %v; want %v, %v", tt.userID, got, legacy, tt.want, tt.wantLegacy)
		}
	}
}
