package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SAUL-ALVES/useradmin/internal/domain/user"
)

// UsersRepo is a map-backed store with the same contract as the postgres
// repo, including the uniqueness constraint on email. Used by tests and for
// running the app without a database.
type UsersRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]user.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		nextID: 1,
		items:  make(map[int64]user.User),
	}
}

func (r *UsersRepo) Create(ctx context.Context, name, email, passwordHash string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTakenLocked(email, 0) {
		return user.User{}, user.ErrEmailTaken
	}

	now := time.Now().UTC()
	u := user.User{
		ID:           r.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	r.nextID++
	r.items[u.ID] = u

	return u, nil
}

func (r *UsersRepo) List(ctx context.Context, q string) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(q)
	output := make([]user.User, 0, len(r.items))

	for _, u := range r.items {
		if needle != "" &&
			!strings.Contains(strings.ToLower(u.Name), needle) &&
			!strings.Contains(strings.ToLower(u.Email), needle) {
			continue
		}

		output = append(output, u)
	}

	sort.Slice(output, func(i, j int) bool { return output[i].ID < output[j].ID })

	return output, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

func (r *UsersRepo) Update(ctx context.Context, id int64, params user.UpdateParams) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	if r.emailTakenLocked(params.Email, id) {
		return user.User{}, user.ErrEmailTaken
	}

	u.Name = params.Name
	u.Email = params.Email

	if params.PasswordHash != nil {
		u.PasswordHash = *params.PasswordHash
	}

	u.UpdatedAt = time.Now().UTC()
	r.items[id] = u

	return u, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return user.ErrNotFound
	}

	delete(r.items, id)

	return nil
}

func (r *UsersRepo) emailTakenLocked(email string, exceptID int64) bool {
	for _, u := range r.items {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}

	return false
}
