package http

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/tenant-service/internal/domain"
	"github.com/spec-kit/tenant-service/internal/repository"
)

// In-memory repositories backing the end-to-end handler tests. Misses
// surface as pgx.ErrNoRows and unique conflicts as 23505 PgErrors, the
// same signals the Postgres implementations produce.

type fakeStore struct {
	mu         sync.Mutex
	users      map[int64]domain.User
	orgs       map[int64]domain.Organization
	products   map[int64]domain.Product
	resets     map[string]repository.PasswordResetToken
	userSeq    int64
	orgSeq     int64
	productSeq int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[int64]domain.User),
		orgs:     make(map[int64]domain.Organization),
		products: make(map[int64]domain.Product),
		resets:   make(map[string]repository.PasswordResetToken),
	}
}

func conflict() error {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
}

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return conflict()
		}
	}
	r.store.userSeq++
	user.ID = r.store.userSeq
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.store.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.store.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(context.Context) ([]domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	users := make([]domain.User, 0, len(r.store.users))
	for _, user := range r.store.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

type fakeOrgRepo struct{ store *fakeStore }

func (r *fakeOrgRepo) Create(_ context.Context, org *domain.Organization) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.orgs {
		if existing.Slug == org.Slug {
			return conflict()
		}
	}
	r.store.orgSeq++
	org.ID = r.store.orgSeq
	org.CreatedAt = time.Now()
	org.UpdatedAt = org.CreatedAt
	r.store.orgs[org.ID] = *org
	return nil
}

func (r *fakeOrgRepo) Update(_ context.Context, org *domain.Organization) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.orgs[org.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.store.orgs[org.ID] = *org
	return nil
}

func (r *fakeOrgRepo) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.orgs[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.store.orgs, id)
	for productID, product := range r.store.products {
		if product.OrganizationID == id {
			delete(r.store.products, productID)
		}
	}
	return nil
}

func (r *fakeOrgRepo) GetByID(_ context.Context, id int64) (*domain.Organization, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	org, ok := r.store.orgs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &org, nil
}

func (r *fakeOrgRepo) GetBySlug(_ context.Context, slug string) (*domain.Organization, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, org := range r.store.orgs {
		if org.Slug == slug {
			found := org
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeOrgRepo) List(context.Context) ([]domain.Organization, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	orgs := make([]domain.Organization, 0, len(r.store.orgs))
	for _, org := range r.store.orgs {
		orgs = append(orgs, org)
	}
	sort.Slice(orgs, func(i, j int) bool { return orgs[i].ID < orgs[j].ID })
	return orgs, nil
}

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.products {
		if existing.OrganizationID == product.OrganizationID && existing.SKU == product.SKU {
			return conflict()
		}
	}
	r.store.productSeq++
	product.ID = r.store.productSeq
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	r.store.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[product.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.store.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.store.products, id)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	product, ok := r.store.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &product, nil
}

func (r *fakeProductRepo) ListByOrganization(_ context.Context, orgID int64) ([]domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	products := make([]domain.Product, 0)
	for _, product := range r.store.products {
		if product.OrganizationID == orgID {
			products = append(products, product)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

type fakeResetRepo struct{ store *fakeStore }

func (r *fakeResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	token.ID = uuid.NewString()
	token.CreatedAt = time.Now()
	r.store.resets[token.Token] = *token
	return nil
}

func (r *fakeResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	token, ok := r.store.resets[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &token, nil
}

func (r *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for key, token := range r.store.resets {
		if token.ID == id {
			now := time.Now()
			token.UsedAt = &now
			r.store.resets[key] = token
		}
	}
	return nil
}
