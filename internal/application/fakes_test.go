package application

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/courseware-labs/account-service/internal/domain/entity"
	"github.com/courseware-labs/account-service/internal/domain/repository"
)

// fakeRepo is an in-memory UserRepository. Reads hand out clones so failed
// saves can never leak partial mutations into the "database".
type fakeRepo struct {
	users   map[string]*entity.User
	saveErr error
	saves   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]*entity.User{}}
}

func (f *fakeRepo) add(u *entity.User) {
	f.users[u.ID] = clone(u)
}

func (f *fakeRepo) Create(_ context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	}
	f.users[u.ID] = clone(u)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string, includeAddress bool) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := clone(u)
	if !includeAddress {
		c.Address = nil
	}
	return c, nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRepo) Save(_ context.Context, u *entity.User) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	if _, ok := f.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := clone(u)
	if stored.Address == nil {
		// A save without a loaded address leaves the stored one untouched.
		stored.Address = clone(f.users[u.ID]).Address
	}
	f.users[u.ID] = stored
	return nil
}

func clone(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Address != nil {
		a := *u.Address
		c.Address = &a
	}
	return &c
}

var _ repository.UserRepository = (*fakeRepo)(nil)

// fakeStore is an in-memory ObjectStore recording puts and deletes.
type fakeStore struct {
	objects map[string][]byte
	puts    []string
	deleted []string
	putErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if f.putErr != nil {
		return f.putErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[key] = b
	f.puts = append(f.puts, key)
	return nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStore) URL(key string) string {
	return "http://store.test/" + key
}

// fakePublisher records queued notification jobs.
type fakePublisher struct {
	jobs []any
	err  error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, body)
	return nil
}

var errStoreDown = errors.New("store down")
