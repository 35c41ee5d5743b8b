package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/tenant-service/internal/config"
	"github.com/spec-kit/tenant-service/internal/domain"
	"github.com/spec-kit/tenant-service/internal/repository"
)

// In-memory repository fakes. They mirror the Postgres behavior the
// services rely on: pgx.ErrNoRows for misses and a 23505 PgError for
// unique-constraint violations.

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: constraint}
}

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret",
			AccessTokenTTLMinutes:   60,
			PasswordResetTTLMinutes: 30,
			BcryptCost:              bcrypt.MinCost,
		},
	}
}

type memUserRepo struct {
	mu     sync.Mutex
	byID   map[int64]domain.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: make(map[int64]domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == user.Email {
			return uniqueViolation("users_email_key")
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.byID[user.ID] = *user
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	r.byID[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byID {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) List(context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]domain.User, 0, len(r.byID))
	for _, user := range r.byID {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// blindUserRepo hides accounts from GetByEmail so Register's pre-check
// passes, simulating the losing side of a concurrent registration race.
type blindUserRepo struct {
	*memUserRepo
}

func (r *blindUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

type memResetRepo struct {
	mu      sync.Mutex
	byToken map[string]repository.PasswordResetToken
}

func newMemResetRepo() *memResetRepo {
	return &memResetRepo{byToken: make(map[string]repository.PasswordResetToken)}
}

func (r *memResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.ID = uuid.NewString()
	token.CreatedAt = time.Now()
	r.byToken[token.Token] = *token
	return nil
}

func (r *memResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.byToken[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &token, nil
}

func (r *memResetRepo) MarkUsed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, token := range r.byToken {
		if token.ID == id {
			now := time.Now()
			token.UsedAt = &now
			r.byToken[key] = token
		}
	}
	return nil
}

type memOrgRepo struct {
	mu     sync.Mutex
	byID   map[int64]domain.Organization
	nextID int64
}

func newMemOrgRepo() *memOrgRepo {
	return &memOrgRepo{byID: make(map[int64]domain.Organization)}
}

func (r *memOrgRepo) Create(_ context.Context, org *domain.Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Slug == org.Slug {
			return uniqueViolation("organizations_slug_key")
		}
	}
	r.nextID++
	org.ID = r.nextID
	org.CreatedAt = time.Now()
	org.UpdatedAt = org.CreatedAt
	r.byID[org.ID] = *org
	return nil
}

func (r *memOrgRepo) Update(_ context.Context, org *domain.Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[org.ID]; !ok {
		return pgx.ErrNoRows
	}
	org.UpdatedAt = time.Now()
	r.byID[org.ID] = *org
	return nil
}

func (r *memOrgRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *memOrgRepo) GetByID(_ context.Context, id int64) (*domain.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	org, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &org, nil
}

func (r *memOrgRepo) GetBySlug(_ context.Context, slug string) (*domain.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, org := range r.byID {
		if org.Slug == slug {
			found := org
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memOrgRepo) List(context.Context) ([]domain.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orgs := make([]domain.Organization, 0, len(r.byID))
	for _, org := range r.byID {
		orgs = append(orgs, org)
	}
	sort.Slice(orgs, func(i, j int) bool { return orgs[i].ID < orgs[j].ID })
	return orgs, nil
}

type memProductRepo struct {
	mu     sync.Mutex
	byID   map[int64]domain.Product
	nextID int64
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{byID: make(map[int64]domain.Product)}
}

func (r *memProductRepo) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.OrganizationID == product.OrganizationID && existing.SKU == product.SKU {
			return uniqueViolation("products_organization_id_sku_key")
		}
	}
	r.nextID++
	product.ID = r.nextID
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	r.byID[product.ID] = *product
	return nil
}

func (r *memProductRepo) Update(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[product.ID]; !ok {
		return pgx.ErrNoRows
	}
	for _, existing := range r.byID {
		if existing.ID != product.ID && existing.OrganizationID == product.OrganizationID && existing.SKU == product.SKU {
			return uniqueViolation("products_organization_id_sku_key")
		}
	}
	product.UpdatedAt = time.Now()
	r.byID[product.ID] = *product
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &product, nil
}

func (r *memProductRepo) ListByOrganization(_ context.Context, orgID int64) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var products []domain.Product
	for _, product := range r.byID {
		if product.OrganizationID == orgID {
			products = append(products, product)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}
