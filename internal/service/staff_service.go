package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-directory/internal/config"
	"github.com/spec-kit/staff-directory/internal/credential"
	"github.com/spec-kit/staff-directory/internal/domain"
	"github.com/spec-kit/staff-directory/internal/events"
	"github.com/spec-kit/staff-directory/internal/repository"
	"github.com/spec-kit/staff-directory/internal/validate"
)

// StaffService orchestrates the account lifecycle: registration,
// authentication, attribute mutation, credential rotation, and deletion.
// Each operation is a short-lived protocol that re-reads from the store;
// nothing is cached between calls.
type StaffService struct {
	accounts   repository.StaffRepository
	refs       repository.ReferenceRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// StaffDependencies encapsulates repo requirements for the lifecycle.
type StaffDependencies struct {
	StaffRepo     repository.StaffRepository
	ReferenceRepo repository.ReferenceRepository
	Dispatcher    events.Dispatcher
}

// NewStaffService builds the service.
func NewStaffService(cfg config.Config, logger *zap.Logger, deps StaffDependencies) *StaffService {
	return &StaffService{
		accounts:   deps.StaffRepo,
		refs:       deps.ReferenceRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterInput carries the raw registration attributes.
type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Secret    string
	Email     string
	AddressID int
	StoreID   int
}

// Register creates a new staff account with active=true.
func (s *StaffService) Register(ctx context.Context, input RegisterInput) (*domain.StaffAccount, error) {
	first, err := validate.Field(domain.FieldFirstName, input.FirstName)
	if err != nil {
		return nil, err
	}
	last, err := validate.Field(domain.FieldLastName, input.LastName)
	if err != nil {
		return nil, err
	}
	username, err := validate.Field(domain.FieldUsername, input.Username)
	if err != nil {
		return nil, err
	}
	email, err := validate.Field(domain.FieldEmail, input.Email)
	if err != nil {
		return nil, err
	}
	if input.AddressID <= 0 || input.StoreID <= 0 {
		return nil, domain.ErrInvalidInteger
	}
	if len(input.Secret) < credential.MinSecretLength {
		return nil, domain.ErrCredentialTooShort
	}

	if taken, err := s.accounts.ExistsByUsername(ctx, username.(string)); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrDuplicateAccount
	}
	if taken, err := s.accounts.ExistsByEmail(ctx, email.(string)); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrDuplicateAccount
	}

	if err := s.checkReferences(ctx, input.AddressID, input.StoreID); err != nil {
		return nil, err
	}

	hash, err := credential.Derive(input.Secret, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	account := &domain.StaffAccount{
		FirstName:  first.(string),
		LastName:   last.(string),
		Email:      email.(string),
		Username:   username.(string),
		Credential: hash,
		AddressID:  input.AddressID,
		StoreID:    input.StoreID,
		Active:     true,
	}
	if err := s.accounts.Insert(ctx, account); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventAccountRegistered, account, "")
	return account, nil
}

// Authenticate verifies a username/secret pair. Unknown usernames and wrong
// secrets both come back as ErrInvalidCredentials so callers cannot
// enumerate accounts; the distinction exists only in debug logs.
func (s *StaffService) Authenticate(ctx context.Context, username, secret string) (*domain.StaffAccount, error) {
	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debug("login for unknown username", zap.String("username", username))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !account.Active {
		return nil, domain.ErrAccountDisabled
	}
	if !credential.Verify(secret, account.Credential) {
		s.logger.Debug("login with wrong secret", zap.String("username", username))
		return nil, domain.ErrInvalidCredentials
	}

	// Login timestamp refresh is best-effort; a failure here must not fail
	// an otherwise valid authentication.
	if err := s.accounts.TouchLastUpdate(ctx, account.ID); err != nil {
		s.logger.Warn("login timestamp refresh failed", zap.Int("staff_id", account.ID), zap.Error(err))
	}

	s.publish(ctx, events.EventAccountLoggedIn, account, "")
	return account, nil
}

// RotateCredential replaces the stored credential after verifying the old
// secret.
func (s *StaffService) RotateCredential(ctx context.Context, username, oldSecret, newSecret string) error {
	account, err := s.Authenticate(ctx, username, oldSecret)
	if err != nil {
		return err
	}
	if newSecret == oldSecret {
		return domain.ErrSameCredential
	}
	if len(newSecret) < credential.MinSecretLength {
		return domain.ErrCredentialTooShort
	}

	hash, err := credential.Derive(newSecret, s.bcryptCost)
	if err != nil {
		return err
	}
	rows, err := s.accounts.UpdateCredential(ctx, account.ID, hash)
	if err != nil {
		return err
	}
	if rows == 0 {
		// Deleted between authenticate and update.
		return domain.ErrNotFound
	}

	s.publish(ctx, events.EventCredentialRotated, account, "")
	return nil
}

// ModifyField validates and applies one attribute change. Setting the same
// value again is a no-op that leaves last_update untouched.
func (s *StaffService) ModifyField(ctx context.Context, id int, fieldName, rawValue string) (*domain.StaffAccount, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	field := domain.Field(fieldName)
	value, err := validate.Field(field, rawValue)
	if err != nil {
		return nil, err
	}

	switch field {
	case domain.FieldAddressID:
		if err := s.checkAddress(ctx, value.(int)); err != nil {
			return nil, err
		}
	case domain.FieldStoreID:
		if err := s.checkStore(ctx, value.(int)); err != nil {
			return nil, err
		}
	}

	if current, ok := account.ValueOf(field); ok && current == value {
		return account, nil
	}

	rows, err := s.accounts.UpdateField(ctx, id, field, value)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Deleted between the read and the write.
		return nil, domain.ErrNotFound
	}

	updated, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventFieldModified, updated, field)
	return updated, nil
}

// Delete physically removes the account. It is irreversible and single-shot;
// confirmation gating is the caller's responsibility.
func (s *StaffService) Delete(ctx context.Context, username string) error {
	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	rows, err := s.accounts.Delete(ctx, username)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrDeleteFailed
	}

	s.publish(ctx, events.EventAccountDeleted, account, "")
	return nil
}

// FindByUsername exposes a read-only lookup for callers that render account
// details before acting on them.
func (s *StaffService) FindByUsername(ctx context.Context, username string) (*domain.StaffAccount, error) {
	return s.accounts.FindByUsername(ctx, username)
}

// FindByID exposes a read-only lookup by identifier.
func (s *StaffService) FindByID(ctx context.Context, id int) (*domain.StaffAccount, error) {
	return s.accounts.FindByID(ctx, id)
}

func (s *StaffService) checkReferences(ctx context.Context, addressID, storeID int) error {
	if err := s.checkAddress(ctx, addressID); err != nil {
		return err
	}
	return s.checkStore(ctx, storeID)
}

func (s *StaffService) checkAddress(ctx context.Context, id int) error {
	found, err := s.refs.AddressExists(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrForeignKeyNotFound
	}
	return nil
}

func (s *StaffService) checkStore(ctx context.Context, id int) error {
	found, err := s.refs.StoreExists(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrForeignKeyNotFound
	}
	return nil
}

func (s *StaffService) publish(ctx context.Context, eventType events.EventType, account *domain.StaffAccount, field domain.Field) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		AccountID: account.ID,
		Username:  account.Username,
		Field:     field,
		Timestamp: time.Now().UTC(),
	})
}
