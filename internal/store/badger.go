// MyAnimeCompanion - Conversational Anime Information Assistant
// Copyright 2026 Ansh Gaigawali
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/AnshGaigawali/MyAnimeCompanion

package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/AnshGaigawali/MyAnimeCompanion/internal/metrics"
)

// Key layout:
//
//	user:{id}                 -> User JSON
//	email:{email}:{id}        -> id
//	rating:{user_id}:{anime}  -> Rating JSON
//	anime:{anime_id}          -> AnimeTitle JSON
const (
	userKeyPrefix   = "user:"
	emailKeyPrefix  = "email:"
	ratingKeyPrefix = "rating:"
	animeKeyPrefix  = "anime:"

	badgerBackend = "badger"
)

// BadgerStore is the embedded Store backend. User ids are UUIDv7 so the
// email index iterates accounts in creation order.
type BadgerStore struct {
	db  *badger.DB
	now func() time.Time
}

// OpenBadgerStore opens (or creates) a database at path. An in-memory
// database ignores path.
func OpenBadgerStore(path string, inMemory bool) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return NewBadgerStore(db), nil
}

// NewBadgerStore wraps an open database.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db, now: time.Now}
}

func observe(operation string, start time.Time, err error) {
	metrics.RecordDBQuery(badgerBackend, operation, time.Since(start), err)
}

func parseUserID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// CreateUser stores a new account with an empty history.
func (s *BadgerStore) CreateUser(_ context.Context, email string, passwordHash []byte) (id string, err error) {
	start := time.Now()
	defer func() { observe("user_create", start, err) }()

	uid, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate user id: %w", err)
	}
	user := User{
		ID:           uid.String(),
		Email:        email,
		PasswordHash: passwordHash,
		History:      []Turn{},
		CreatedAt:    s.now().UTC(),
	}
	data, err := json.Marshal(&user)
	if err != nil {
		return "", fmt.Errorf("marshal user: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(userKeyPrefix+user.ID), data); err != nil {
			return fmt.Errorf("set user: %w", err)
		}
		if err := txn.Set([]byte(emailKeyPrefix+email+":"+user.ID), []byte(user.ID)); err != nil {
			return fmt.Errorf("set email index: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// UserByEmail returns the earliest account with email.
func (s *BadgerStore) UserByEmail(_ context.Context, email string) (user *User, err error) {
	start := time.Now()
	defer func() { observe("user_by_email", start, err) }()

	err = s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(emailKeyPrefix + email + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var id string
			if err := it.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			}); err != nil {
				return fmt.Errorf("read email index: %w", err)
			}
			u, err := getUser(txn, id)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			user = u
			return nil
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// User loads an account by id.
func (s *BadgerStore) User(_ context.Context, id string) (user *User, err error) {
	start := time.Now()
	defer func() { observe("user_get", start, err) }()

	if err := parseUserID(id); err != nil {
		return nil, err
	}
	err = s.db.View(func(txn *badger.Txn) error {
		user, err = getUser(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the account, its history and its email index entry.
func (s *BadgerStore) DeleteUser(_ context.Context, id string) (err error) {
	start := time.Now()
	defer func() { observe("user_delete", start, err) }()

	if err := parseUserID(id); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		user, err := getUser(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete([]byte(userKeyPrefix + id)); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		if err := txn.Delete([]byte(emailKeyPrefix + user.Email + ":" + id)); err != nil {
			return fmt.Errorf("delete email index: %w", err)
		}
		return nil
	})
}

// AppendTurn adds turn to the end of the user's history.
func (s *BadgerStore) AppendTurn(_ context.Context, userID string, turn Turn) (err error) {
	start := time.Now()
	defer func() { observe("history_append", start, err) }()

	if err := parseUserID(userID); err != nil {
		return err
	}
	return s.updateUser(userID, func(u *User) {
		u.History = append(u.History, turn)
	})
}

// History returns the user's turns in insertion order.
func (s *BadgerStore) History(ctx context.Context, userID string) ([]Turn, error) {
	user, err := s.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.History == nil {
		return []Turn{}, nil
	}
	return user.History, nil
}

// ClearHistory replaces the user's history with an empty list.
func (s *BadgerStore) ClearHistory(_ context.Context, userID string) (err error) {
	start := time.Now()
	defer func() { observe("history_clear", start, err) }()

	if err := parseUserID(userID); err != nil {
		return err
	}
	return s.updateUser(userID, func(u *User) {
		u.History = []Turn{}
	})
}

// updateUser applies fn to the stored user inside one transaction.
func (s *BadgerStore) updateUser(id string, fn func(*User)) error {
	return s.db.Update(func(txn *badger.Txn) error {
		user, err := getUser(txn, id)
		if err != nil {
			return err
		}
		fn(user)
		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}
		return txn.Set([]byte(userKeyPrefix+id), data)
	})
}

func getUser(txn *badger.Txn, id string) (*User, error) {
	item, err := txn.Get([]byte(userKeyPrefix + id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	var user User
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &user)
	}); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

// Ratings returns every stored rating.
func (s *BadgerStore) Ratings(ctx context.Context) (ratings []Rating, err error) {
	start := time.Now()
	defer func() { observe("ratings_list", start, err) }()

	ratings = []Rating{}
	err = scanPrefix(ctx, s.db, ratingKeyPrefix, func(val []byte) error {
		var r Rating
		if err := json.Unmarshal(val, &r); err != nil {
			return fmt.Errorf("decode rating: %w", err)
		}
		ratings = append(ratings, r)
		return nil
	})
	return ratings, err
}

// UpsertRating stores r, replacing an earlier rating of the same pair.
func (s *BadgerStore) UpsertRating(_ context.Context, r Rating) (err error) {
	start := time.Now()
	defer func() { observe("rating_upsert", start, err) }()

	data, err := json.Marshal(&r)
	if err != nil {
		return fmt.Errorf("marshal rating: %w", err)
	}
	key := ratingKeyPrefix + r.UserID + ":" + strconv.Itoa(r.AnimeID)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// AnimeTitles returns the whole title table.
func (s *BadgerStore) AnimeTitles(ctx context.Context) (titles []AnimeTitle, err error) {
	start := time.Now()
	defer func() { observe("titles_list", start, err) }()

	titles = []AnimeTitle{}
	err = scanPrefix(ctx, s.db, animeKeyPrefix, func(val []byte) error {
		var t AnimeTitle
		if err := json.Unmarshal(val, &t); err != nil {
			return fmt.Errorf("decode anime title: %w", err)
		}
		titles = append(titles, t)
		return nil
	})
	return titles, err
}

// UpsertAnimeTitle stores or replaces the title of t.AnimeID.
func (s *BadgerStore) UpsertAnimeTitle(_ context.Context, t AnimeTitle) (err error) {
	start := time.Now()
	defer func() { observe("title_upsert", start, err) }()

	data, err := json.Marshal(&t)
	if err != nil {
		return fmt.Errorf("marshal anime title: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(animeKeyPrefix+strconv.Itoa(t.AnimeID)), data)
	})
}

func scanPrefix(ctx context.Context, db *badger.DB, prefix string, fn func(val []byte) error) error {
	return db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := it.Item().Value(fn); err != nil {
				return err
			}
		}
		return nil
	})
}

// Ping reports whether the database is open.
func (s *BadgerStore) Ping(context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger db is closed")
	}
	return nil
}

// Close closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
