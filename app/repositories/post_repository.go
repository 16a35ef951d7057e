package repositories

import (
	"context"
	"errors"
	"time"

	"blogspot/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db  *badger.DB
	seq *badger.Sequence
	now func() time.Time
}

// NewBadgerPostRepository creates a new BadgerPostRepository. Close must be
// called before the database is closed.
func NewBadgerPostRepository(db *badger.DB) (*BadgerPostRepository, error) {
	seq, err := db.GetSequence([]byte(PostSeqKey), seqBandwidth)
	if err != nil {
		return nil, err
	}
	return &BadgerPostRepository{db: db, seq: seq, now: utcNow}, nil
}

// Close releases the id sequence.
func (r *BadgerPostRepository) Close() error {
	return r.seq.Release()
}

func utcNow() time.Time { return time.Now().UTC() }

// List returns every post in id order.
func (r *BadgerPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	posts := []*models.Post{}
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(PostKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return err
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		return getPost(txn, id, &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Insert stores a new post and returns its id.
func (r *BadgerPostRepository) Insert(ctx context.Context, in *models.PostInput) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	id, err := nextID(r.seq)
	if err != nil {
		return 0, err
	}

	err = update(r.db, func(txn *badger.Txn) error {
		post := &models.Post{ID: id, Title: in.Title, Contents: in.Contents}
		post.Stamp(r.now())
		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(postKey(id), data)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update rewrites the title and contents of an existing post.
func (r *BadgerPostRepository) Update(ctx context.Context, id int, in *models.PostInput) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int
	err := update(r.db, func(txn *badger.Txn) error {
		count = 0
		var post models.Post
		err := getPost(txn, id, &post)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		post.Apply(in, r.now())
		data, err := marshalEntity(&post)
		if err != nil {
			return err
		}
		if err := txn.Set(postKey(id), data); err != nil {
			return err
		}
		count = 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes a post. Comments stored under the post are left in place.
func (r *BadgerPostRepository) Delete(ctx context.Context, id int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int
	err := update(r.db, func(txn *badger.Txn) error {
		count = 0
		_, err := txn.Get(postKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := txn.Delete(postKey(id)); err != nil {
			return err
		}
		count = 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func getPost(txn *badger.Txn, id int, post *models.Post) error {
	item, err := txn.Get(postKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, post)
	})
}
