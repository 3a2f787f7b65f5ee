package service

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

// UserService handles registration and credential checks.
type UserService struct {
	reader *storage.Reader
	op     actionProcessor
	tokens tokenSigner
	cost   int
}

func NewUserService(reader *storage.Reader, op actionProcessor, tokens tokenSigner) *UserService {
	return &UserService{
		reader: reader,
		op:     op,
		tokens: tokens,
		cost:   bcrypt.DefaultCost,
	}
}

// Create registers a user and signs a session token for them.
func (s *UserService) Create(ctx context.Context, email, password string) (*Registration, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperror.BadRequest("password is too long")
		}
		return nil, errors.Wrap(err, "hash password")
	}

	action := &actions.CreateUser{Email: email, PasswordHash: string(hash)}
	if err := s.op.Process(ctx, action); err != nil {
		return nil, err
	}

	token, err := s.tokens.Sign(action.Result.ID, action.Result.Email)
	if err != nil {
		return nil, err
	}
	return &Registration{User: userFromRow(action.Result), Token: token}, nil
}

// FindOne returns the user with the given email, or nil when there is none.
func (s *UserService) FindOne(ctx context.Context, email string) (*User, error) {
	row, err := s.reader.Users.FindByEmail(ctx, email)
	if err != nil || row == nil {
		return nil, err
	}
	user := userFromRow(row)
	return &user, nil
}

// Login checks the credentials and signs a new session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	row, err := s.reader.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.Wrap(apperror.KindUnauthorized, "invalid email or password", err)
	}

	token, err := s.tokens.Sign(row.ID, row.Email)
	if err != nil {
		return nil, err
	}
	return &Session{ID: row.ID, Email: row.Email, Token: token}, nil
}

// Profile returns the stored user behind an authenticated caller.
func (s *UserService) Profile(ctx context.Context, id int64) (*User, error) {
	row, err := s.reader.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperror.Unauthorized("user no longer exists")
	}
	user := userFromRow(row)
	return &user, nil
}
