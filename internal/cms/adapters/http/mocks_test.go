package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"simplylife/internal/cms/domain/entities"
	"simplylife/internal/cms/domain/services"
	"simplylife/internal/cms/ports/api"
	"simplylife/internal/registration/schema"
	"simplylife/pkg/i18n"
)

type MockAdminUseCase struct {
	mock.Mock
}

func (m *MockAdminUseCase) Login(ctx context.Context, email, password string) (*services.Session, error) {
	args := m.Called(ctx, email, password)
	s, _ := args.Get(0).(*services.Session)
	return s, args.Error(1)
}

func (m *MockAdminUseCase) RegisterFirst(ctx context.Context, input api.AdminInput) (*entities.Admin, error) {
	args := m.Called(ctx, input)
	a, _ := args.Get(0).(*entities.Admin)
	return a, args.Error(1)
}

func (m *MockAdminUseCase) Create(ctx context.Context, input api.AdminInput) (*entities.Admin, error) {
	args := m.Called(ctx, input)
	a, _ := args.Get(0).(*entities.Admin)
	return a, args.Error(1)
}

func (m *MockAdminUseCase) Get(ctx context.Context, id string) (*entities.Admin, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*entities.Admin)
	return a, args.Error(1)
}

func (m *MockAdminUseCase) List(ctx context.Context, limit, page int) ([]*entities.Admin, int, error) {
	args := m.Called(ctx, limit, page)
	a, _ := args.Get(0).([]*entities.Admin)
	return a, args.Int(1), args.Error(2)
}

func (m *MockAdminUseCase) Update(ctx context.Context, id string, patch api.AdminPatch) (*entities.Admin, error) {
	args := m.Called(ctx, id, patch)
	a, _ := args.Get(0).(*entities.Admin)
	return a, args.Error(1)
}

func (m *MockAdminUseCase) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAdminUseCase) Authenticate(ctx context.Context, authorization string) (*services.Principal, error) {
	args := m.Called(ctx, authorization)
	p, _ := args.Get(0).(*services.Principal)
	return p, args.Error(1)
}

type MockAppUserUseCase struct {
	mock.Mock
}

func (m *MockAppUserUseCase) Login(ctx context.Context, email, password string) (*services.Session, error) {
	args := m.Called(ctx, email, password)
	s, _ := args.Get(0).(*services.Session)
	return s, args.Error(1)
}

func (m *MockAppUserUseCase) Create(ctx context.Context, input api.AppUserInput, locale i18n.Locale) (*entities.AppUser, error) {
	args := m.Called(ctx, input, locale)
	u, _ := args.Get(0).(*entities.AppUser)
	return u, args.Error(1)
}

func (m *MockAppUserUseCase) Get(ctx context.Context, id string) (*entities.AppUser, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entities.AppUser)
	return u, args.Error(1)
}

func (m *MockAppUserUseCase) List(ctx context.Context, limit, page int) ([]*entities.AppUser, int, error) {
	args := m.Called(ctx, limit, page)
	u, _ := args.Get(0).([]*entities.AppUser)
	return u, args.Int(1), args.Error(2)
}

func (m *MockAppUserUseCase) Update(ctx context.Context, id string, patch api.AppUserPatch) (*entities.AppUser, error) {
	args := m.Called(ctx, id, patch)
	u, _ := args.Get(0).(*entities.AppUser)
	return u, args.Error(1)
}

func (m *MockAppUserUseCase) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAppUserUseCase) RegistrationProps(ctx context.Context, id string, locale i18n.Locale) (*services.RegistrationProps, error) {
	args := m.Called(ctx, id, locale)
	p, _ := args.Get(0).(*services.RegistrationProps)
	return p, args.Error(1)
}

func (m *MockAppUserUseCase) FinishRegistration(ctx context.Context, submission schema.Submission, locale i18n.Locale) (*entities.AppUser, error) {
	args := m.Called(ctx, submission, locale)
	u, _ := args.Get(0).(*entities.AppUser)
	return u, args.Error(1)
}

func (m *MockAppUserUseCase) ForgotPassword(ctx context.Context, email string, locale i18n.Locale) error {
	return m.Called(ctx, email, locale).Error(0)
}

func (m *MockAppUserUseCase) ResetPassword(ctx context.Context, token, password string, locale i18n.Locale) (*services.Session, error) {
	args := m.Called(ctx, token, password, locale)
	s, _ := args.Get(0).(*services.Session)
	return s, args.Error(1)
}

type MockSupplierUseCase struct {
	mock.Mock
}

func (m *MockSupplierUseCase) ProductView(ctx context.Context, supplierID string) (*api.SupplierProductView, error) {
	args := m.Called(ctx, supplierID)
	v, _ := args.Get(0).(*api.SupplierProductView)
	return v, args.Error(1)
}

func (m *MockSupplierUseCase) SetProduct(ctx context.Context, supplierID, productID string) error {
	return m.Called(ctx, supplierID, productID).Error(0)
}

func (m *MockSupplierUseCase) ListProducts(ctx context.Context) ([]entities.SupplierProduct, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]entities.SupplierProduct)
	return p, args.Error(1)
}

func (m *MockSupplierUseCase) ListSuppliers(ctx context.Context, filter entities.SupplierFilter) ([]*entities.Supplier, error) {
	args := m.Called(ctx, filter)
	s, _ := args.Get(0).([]*entities.Supplier)
	return s, args.Error(1)
}

type MockHealthUseCase struct {
	mock.Mock
}

func (m *MockHealthUseCase) DatabaseLatency(ctx context.Context) *services.LatencyReport {
	return m.Called(ctx).Get(0).(*services.LatencyReport)
}
