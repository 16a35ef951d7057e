package repositories

import (
	"context"
	"errors"
	"time"

	"blogspot/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB.
//
// Comments live under comment:<postID>:<id> so that listing by post is a
// prefix scan; comment_id:<id> points back at that key for lookups by id.
type BadgerCommentRepository struct {
	db  *badger.DB
	seq *badger.Sequence
	now func() time.Time
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository. Close must
// be called before the database is closed.
func NewBadgerCommentRepository(db *badger.DB) (*BadgerCommentRepository, error) {
	seq, err := db.GetSequence([]byte(CommentSeqKey), seqBandwidth)
	if err != nil {
		return nil, err
	}
	return &BadgerCommentRepository{db: db, seq: seq, now: utcNow}, nil
}

// Close releases the id sequence.
func (r *BadgerCommentRepository) Close() error {
	return r.seq.Release()
}

// ListByPost retrieves all comments for a post
func (r *BadgerCommentRepository) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	comments := []*models.Comment{}
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = commentPrefix(postID)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var comment models.Comment
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return err
			}
			comments = append(comments, &comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetByID retrieves a comment by ID
func (r *BadgerCommentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var comment models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		ref, err := txn.Get(commentIndexKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		key, err := ref.ValueCopy(nil)
		if err != nil {
			return err
		}

		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &comment)
		})
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Insert stores a new comment for postID and returns its id. The caller is
// responsible for checking that the post exists.
func (r *BadgerCommentRepository) Insert(ctx context.Context, postID int, in *models.CommentInput) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	id, err := nextID(r.seq)
	if err != nil {
		return 0, err
	}

	err = update(r.db, func(txn *badger.Txn) error {
		comment := &models.Comment{ID: id, PostID: postID, Text: in.Text}
		comment.Stamp(r.now())
		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}

		key := commentKey(postID, id)
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(commentIndexKey(id), key)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}
