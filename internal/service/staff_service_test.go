package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/staff-directory/internal/config"
	"github.com/spec-kit/staff-directory/internal/domain"
	"github.com/spec-kit/staff-directory/internal/repository"
)

// fakeStaffRepo is an in-memory stand-in for the postgres repository. It
// mirrors the store contract: unique username/email, rows-affected counts,
// last_update rewritten on every mutation.
type fakeStaffRepo struct {
	accounts map[int]*domain.StaffAccount
	touchErr error
	onUpdate func() // runs before UpdateField/UpdateCredential, for race tests
	onDelete func() // runs before Delete, for race tests
	clock    time.Time
}

var _ repository.StaffRepository = (*fakeStaffRepo)(nil)
var _ repository.ReferenceRepository = (*fakeReferenceRepo)(nil)

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{
		accounts: make(map[int]*domain.StaffAccount),
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStaffRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeStaffRepo) FindByUsername(_ context.Context, username string) (*domain.StaffAccount, error) {
	for _, account := range f.accounts {
		if account.Username == username {
			copied := *account
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStaffRepo) FindByID(_ context.Context, id int) (*domain.StaffAccount, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (f *fakeStaffRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.FindByUsername(ctx, username)
	return err == nil, nil
}

func (f *fakeStaffRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, account := range f.accounts {
		if account.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStaffRepo) NextID(_ context.Context) (int, error) {
	next := 1
	for id := range f.accounts {
		if id >= next {
			next = id + 1
		}
	}
	return next, nil
}

func (f *fakeStaffRepo) Insert(ctx context.Context, account *domain.StaffAccount) error {
	if taken, _ := f.ExistsByUsername(ctx, account.Username); taken {
		return domain.ErrDuplicateAccount
	}
	if taken, _ := f.ExistsByEmail(ctx, account.Email); taken {
		return domain.ErrDuplicateAccount
	}
	id, _ := f.NextID(ctx)
	account.ID = id
	account.LastUpdate = f.tick()
	copied := *account
	f.accounts[id] = &copied
	return nil
}

func (f *fakeStaffRepo) UpdateField(_ context.Context, id int, field domain.Field, value any) (int64, error) {
	if f.onUpdate != nil {
		f.onUpdate()
	}
	account, ok := f.accounts[id]
	if !ok {
		return 0, nil
	}
	switch field {
	case domain.FieldFirstName:
		account.FirstName = value.(string)
	case domain.FieldLastName:
		account.LastName = value.(string)
	case domain.FieldEmail:
		account.Email = value.(string)
	case domain.FieldUsername:
		account.Username = value.(string)
	case domain.FieldAddressID:
		account.AddressID = value.(int)
	case domain.FieldStoreID:
		account.StoreID = value.(int)
	case domain.FieldActive:
		account.Active = value.(bool)
	default:
		return 0, domain.ErrUnknownField
	}
	account.LastUpdate = f.tick()
	return 1, nil
}

func (f *fakeStaffRepo) UpdateCredential(_ context.Context, id int, credential string) (int64, error) {
	if f.onUpdate != nil {
		f.onUpdate()
	}
	account, ok := f.accounts[id]
	if !ok {
		return 0, nil
	}
	account.Credential = credential
	account.LastUpdate = f.tick()
	return 1, nil
}

func (f *fakeStaffRepo) TouchLastUpdate(_ context.Context, id int) error {
	if f.touchErr != nil {
		return f.touchErr
	}
	if account, ok := f.accounts[id]; ok {
		account.LastUpdate = f.tick()
	}
	return nil
}

func (f *fakeStaffRepo) Delete(_ context.Context, username string) (int64, error) {
	if f.onDelete != nil {
		f.onDelete()
	}
	for id, account := range f.accounts {
		if account.Username == username {
			delete(f.accounts, id)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeReferenceRepo struct {
	addresses map[int]bool
	stores    map[int]bool
}

func (f *fakeReferenceRepo) AddressExists(_ context.Context, id int) (bool, error) {
	return f.addresses[id], nil
}

func (f *fakeReferenceRepo) StoreExists(_ context.Context, id int) (bool, error) {
	return f.stores[id], nil
}

func newTestService(t *testing.T) (*StaffService, *fakeStaffRepo) {
	t.Helper()
	repo := newFakeStaffRepo()
	refs := &fakeReferenceRepo{
		addresses: map[int]bool{5: true, 6: true},
		stores:    map[int]bool{1: true, 2: true},
	}
	cfg := config.Config{Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost}}
	svc := NewStaffService(cfg, zap.NewNop(), StaffDependencies{
		StaffRepo:     repo,
		ReferenceRepo: refs,
	})
	return svc, repo
}

func registerMike(t *testing.T, svc *StaffService) *domain.StaffAccount {
	t.Helper()
	account, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Mike",
		LastName:  "Hill",
		Username:  "mhill",
		Secret:    "s3cret!",
		Email:     "mhill@x.com",
		AddressID: 5,
		StoreID:   1,
	})
	require.NoError(t, err)
	return account
}

func TestLifecycleScenario(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	taken, err := repo.ExistsByUsername(ctx, "mhill")
	require.NoError(t, err)
	assert.False(t, taken)

	account := registerMike(t, svc)
	assert.Greater(t, account.ID, 0)
	assert.True(t, account.Active)
	assert.NotEqual(t, "s3cret!", account.Credential)

	taken, err = repo.ExistsByUsername(ctx, "mhill")
	require.NoError(t, err)
	assert.True(t, taken)

	authed, err := svc.Authenticate(ctx, "mhill", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, account.ID, authed.ID)

	_, err = svc.Authenticate(ctx, "mhill", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.ModifyField(ctx, account.ID, "active", "false")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "mhill", "s3cret!")
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)

	require.NoError(t, svc.Delete(ctx, "mhill"))

	_, err = svc.FindByUsername(ctx, "mhill")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	registerMike(t, svc)

	_, err := svc.Register(ctx, RegisterInput{
		FirstName: "Other", LastName: "Person", Username: "mhill",
		Secret: "different", Email: "other@x.com", AddressID: 5, StoreID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateAccount)

	_, err = svc.Register(ctx, RegisterInput{
		FirstName: "Other", LastName: "Person", Username: "operson",
		Secret: "different", Email: "mhill@x.com", AddressID: 5, StoreID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateAccount)

	// No partial rows may be left behind.
	assert.Len(t, repo.accounts, 1)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	base := RegisterInput{
		FirstName: "Mike", LastName: "Hill", Username: "mhill",
		Secret: "s3cret!", Email: "mhill@x.com", AddressID: 5, StoreID: 1,
	}

	input := base
	input.FirstName = "  "
	_, err := svc.Register(ctx, input)
	assert.ErrorIs(t, err, domain.ErrEmptyValue)

	input = base
	input.Secret = "short"
	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, domain.ErrCredentialTooShort)

	input = base
	input.AddressID = 0
	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, domain.ErrInvalidInteger)

	input = base
	input.AddressID = 99
	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, domain.ErrForeignKeyNotFound)

	input = base
	input.StoreID = 99
	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, domain.ErrForeignKeyNotFound)
}

func TestAuthenticateUnknownUserIsInvalidCredentials(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticateTouchFailureIsSwallowed(t *testing.T) {
	svc, repo := newTestService(t)
	registerMike(t, svc)
	repo.touchErr = errors.New("store unavailable")

	_, err := svc.Authenticate(context.Background(), "mhill", "s3cret!")
	assert.NoError(t, err)
}

func TestRotateCredential(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	registerMike(t, svc)

	err := svc.RotateCredential(ctx, "mhill", "wrong", "n3wsecret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	err = svc.RotateCredential(ctx, "mhill", "s3cret!", "s3cret!")
	assert.ErrorIs(t, err, domain.ErrSameCredential)

	err = svc.RotateCredential(ctx, "mhill", "s3cret!", "tiny")
	assert.ErrorIs(t, err, domain.ErrCredentialTooShort)

	require.NoError(t, svc.RotateCredential(ctx, "mhill", "s3cret!", "n3wsecret"))

	_, err = svc.Authenticate(ctx, "mhill", "n3wsecret")
	assert.NoError(t, err)
	_, err = svc.Authenticate(ctx, "mhill", "s3cret!")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestModifyFieldIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	account := registerMike(t, svc)

	first, err := svc.ModifyField(ctx, account.ID, "email", "new@x.com")
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", first.Email)

	second, err := svc.ModifyField(ctx, account.ID, "email", "new@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.LastUpdate, second.LastUpdate)
	assert.Equal(t, first.Username, second.Username)
	assert.Equal(t, first.AddressID, second.AddressID)
}

func TestModifyFieldValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	account := registerMike(t, svc)

	_, err := svc.ModifyField(ctx, account.ID, "active", "maybe")
	assert.ErrorIs(t, err, domain.ErrInvalidBoolean)

	_, err = svc.ModifyField(ctx, account.ID, "address_id", "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidInteger)

	_, err = svc.ModifyField(ctx, account.ID, "store_id", "99")
	assert.ErrorIs(t, err, domain.ErrForeignKeyNotFound)

	_, err = svc.ModifyField(ctx, account.ID, "password", "sneaky")
	assert.ErrorIs(t, err, domain.ErrUnknownField)

	_, err = svc.ModifyField(ctx, 404, "email", "x@y.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestModifyFieldDeletedConcurrently(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	account := registerMike(t, svc)

	repo.onUpdate = func() {
		delete(repo.accounts, account.ID)
	}
	_, err := svc.ModifyField(ctx, account.ID, "email", "new@x.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteRemovedConcurrently(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	account := registerMike(t, svc)

	// The lookup succeeds, then the row vanishes before the delete lands.
	repo.onDelete = func() {
		delete(repo.accounts, account.ID)
	}
	err := svc.Delete(ctx, "mhill")
	assert.ErrorIs(t, err, domain.ErrDeleteFailed)
}

func TestRotateCredentialDeletedConcurrently(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	account := registerMike(t, svc)

	repo.onUpdate = func() {
		delete(repo.accounts, account.ID)
	}
	err := svc.RotateCredential(ctx, "mhill", "s3cret!", "n3wsecret")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteMissingAccount(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
