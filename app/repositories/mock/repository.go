// Package mock provides in-memory repositories with failure injection for
// tests.
package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"blogspot/app/models"
	"blogspot/app/repositories"
)

// recorder counts calls per method and returns injected failures.
type recorder struct {
	mutex sync.Mutex
	fails map[string]error
	calls map[string]int
}

func (r *recorder) call(method string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.calls == nil {
		r.calls = make(map[string]int)
	}
	r.calls[method]++
	return r.fails[method]
}

// Fail makes every later call to method return err. A nil err clears it.
func (r *recorder) Fail(method string, err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.fails == nil {
		r.fails = make(map[string]error)
	}
	if err == nil {
		delete(r.fails, method)
		return
	}
	r.fails[method] = err
}

// Calls reports how many times method has been invoked.
func (r *recorder) Calls(method string) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.calls[method]
}

type PostRepository struct {
	recorder
	posts  map[int]models.Post
	nextID int
	mutex  sync.RWMutex
}

type CommentRepository struct {
	recorder
	comments map[int]models.Comment
	nextID   int
	mutex    sync.RWMutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[int]models.Post),
		nextID: 1,
	}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[int]models.Comment),
		nextID:   1,
	}
}

// PostRepository implementation

func (m *PostRepository) List(ctx context.Context) ([]*models.Post, error) {
	if err := m.call("List"); err != nil {
		return nil, err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := make([]*models.Post, 0, len(m.posts))
	for _, post := range m.posts {
		p := post
		posts = append(posts, &p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (m *PostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	if err := m.call("GetByID"); err != nil {
		return nil, err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return &post, nil
}

func (m *PostRepository) Insert(ctx context.Context, in *models.PostInput) (int, error) {
	if err := m.call("Insert"); err != nil {
		return 0, err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post := models.Post{ID: m.nextID, Title: in.Title, Contents: in.Contents}
	post.Stamp(time.Now().UTC())
	m.posts[post.ID] = post
	m.nextID++
	return post.ID, nil
}

func (m *PostRepository) Update(ctx context.Context, id int, in *models.PostInput) (int, error) {
	if err := m.call("Update"); err != nil {
		return 0, err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post, exists := m.posts[id]
	if !exists {
		return 0, nil
	}
	post.Apply(in, time.Now().UTC())
	m.posts[id] = post
	return 1, nil
}

func (m *PostRepository) Delete(ctx context.Context, id int) (int, error) {
	if err := m.call("Delete"); err != nil {
		return 0, err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return 0, nil
	}
	delete(m.posts, id)
	return 1, nil
}

// CommentRepository implementation

func (m *CommentRepository) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	if err := m.call("ListByPost"); err != nil {
		return nil, err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comments := []*models.Comment{}
	for _, comment := range m.comments {
		if comment.PostID == postID {
			c := comment
			comments = append(comments, &c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (m *CommentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	if err := m.call("GetByID"); err != nil {
		return nil, err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return &comment, nil
}

func (m *CommentRepository) Insert(ctx context.Context, postID int, in *models.CommentInput) (int, error) {
	if err := m.call("Insert"); err != nil {
		return 0, err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment := models.Comment{ID: m.nextID, PostID: postID, Text: in.Text}
	comment.Stamp(time.Now().UTC())
	m.comments[comment.ID] = comment
	m.nextID++
	return comment.ID, nil
}

// Count returns the total number of stored comments.
func (m *CommentRepository) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.comments)
}
