package app_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"simplylife/internal/cms/domain/entities"
	"simplylife/internal/cms/domain/services"
)

type mockAdminRepository struct {
	mock.Mock
}

func (m *mockAdminRepository) Create(ctx context.Context, admin *entities.Admin) (*entities.Admin, error) {
	args := m.Called(ctx, admin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Admin), args.Error(1)
}

func (m *mockAdminRepository) FindByID(ctx context.Context, id string) (*entities.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Admin), args.Error(1)
}

func (m *mockAdminRepository) FindByEmail(ctx context.Context, email string) (*entities.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Admin), args.Error(1)
}

func (m *mockAdminRepository) FindByAPIKey(ctx context.Context, apiKey string) (*entities.Admin, error) {
	args := m.Called(ctx, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Admin), args.Error(1)
}

func (m *mockAdminRepository) List(ctx context.Context, limit, offset int) ([]*entities.Admin, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Admin), args.Error(1)
}

func (m *mockAdminRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockAdminRepository) Update(ctx context.Context, admin *entities.Admin) (*entities.Admin, error) {
	args := m.Called(ctx, admin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Admin), args.Error(1)
}

func (m *mockAdminRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockAppUserRepository struct {
	mock.Mock
}

func (m *mockAppUserRepository) Create(ctx context.Context, user *entities.AppUser) (*entities.AppUser, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AppUser), args.Error(1)
}

func (m *mockAppUserRepository) FindByID(ctx context.Context, id string) (*entities.AppUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AppUser), args.Error(1)
}

func (m *mockAppUserRepository) FindByEmail(ctx context.Context, email string) (*entities.AppUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AppUser), args.Error(1)
}

func (m *mockAppUserRepository) FindByResetToken(ctx context.Context, token string) (*entities.AppUser, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AppUser), args.Error(1)
}

func (m *mockAppUserRepository) List(ctx context.Context, limit, offset int) ([]*entities.AppUser, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.AppUser), args.Error(1)
}

func (m *mockAppUserRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockAppUserRepository) Update(ctx context.Context, user *entities.AppUser) (*entities.AppUser, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AppUser), args.Error(1)
}

func (m *mockAppUserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockSupplierRepository struct {
	mock.Mock
}

func (m *mockSupplierRepository) FindProductAssociation(ctx context.Context, supplierID string) (*entities.ProductAssociation, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ProductAssociation), args.Error(1)
}

func (m *mockSupplierRepository) ListProducts(ctx context.Context) ([]entities.SupplierProduct, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.SupplierProduct), args.Error(1)
}

func (m *mockSupplierRepository) SetProduct(ctx context.Context, supplierID, productID string) error {
	return m.Called(ctx, supplierID, productID).Error(0)
}

func (m *mockSupplierRepository) List(ctx context.Context, filter entities.SupplierFilter) ([]*entities.Supplier, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Supplier), args.Error(1)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Generate(ctx context.Context, collection, userID, email string) (string, time.Time, error) {
	args := m.Called(ctx, collection, userID, email)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenService) Validate(ctx context.Context, token string) (*services.JWTClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.JWTClaims), args.Error(1)
}

type mockLoginLimiter struct {
	mock.Mock
}

func (m *mockLoginLimiter) Locked(ctx context.Context, collection, email string) (bool, error) {
	args := m.Called(ctx, collection, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockLoginLimiter) RegisterFailure(ctx context.Context, collection, email string) (int, error) {
	args := m.Called(ctx, collection, email)
	return args.Int(0), args.Error(1)
}

func (m *mockLoginLimiter) Reset(ctx context.Context, collection, email string) error {
	return m.Called(ctx, collection, email).Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, email *services.Email) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) Save(ctx context.Context, key string, image services.Image) (string, error) {
	args := m.Called(ctx, key, image)
	return args.String(0), args.Error(1)
}

func (m *mockImageStore) Delete(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

type mockProductCache struct {
	mock.Mock
}

func (m *mockProductCache) Get(ctx context.Context) ([]entities.SupplierProduct, bool, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]entities.SupplierProduct)
	return products, args.Bool(1), args.Error(2)
}

func (m *mockProductCache) Set(ctx context.Context, products []entities.SupplierProduct) error {
	return m.Called(ctx, products).Error(0)
}

func (m *mockProductCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockProber struct {
	mock.Mock
}

func (m *mockProber) Probe(ctx context.Context) (time.Duration, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Duration), args.Error(1)
}

// fakeMetrics запоминает события вместо экспорта.
type fakeMetrics struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeMetrics) record(event string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeMetrics) RegistrationFinished()              { f.record("registration_finished") }
func (f *fakeMetrics) RegistrationRejected(reason string) { f.record("registration_rejected:" + reason) }
func (f *fakeMetrics) EmailSent(kind string)              { f.record("email_sent:" + kind) }
func (f *fakeMetrics) EmailFailed(kind string)            { f.record("email_failed:" + kind) }
func (f *fakeMetrics) LoginFailed(collection string)      { f.record("login_failed:" + collection) }

func (f *fakeMetrics) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}
