// Package services contains server-side business logic. Every exported
// operation returns either its result or an *apperr.Error ready to be sent
// to the client.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/employeehub/internal/common"
	"github.com/dmitrijs2005/employeehub/internal/server/apperr"
	"github.com/dmitrijs2005/employeehub/internal/server/models"
	"github.com/dmitrijs2005/employeehub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/employeehub/internal/server/validation"
)

// CredentialService hashes and verifies passwords and issues tokens.
type CredentialService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) bool
	IssueToken(userID, userName string) (string, error)
}

// LoginResult is a successful login: the session token and the account it belongs to.
type LoginResult struct {
	Token   string
	Account *models.Account
}

type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	creds       CredentialService

	dummyOnce sync.Once
	dummyHash string
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, creds CredentialService) *AccountService {
	return &AccountService{db: db, repomanager: m, creds: creds}
}

// Signup creates an account. The email is stored lower-cased, so addresses
// differing only in case collide.
func (s *AccountService) Signup(ctx context.Context, username, email, password string) (*models.Account, error) {
	errs := validation.Validate(validation.Record{
		"username": username,
		"email":    email,
		"password": password,
	}, validation.SignupRules)
	if errs != nil {
		return nil, apperr.Validation(apperr.CodeBadRequest, errs)
	}

	hash, err := s.creds.HashPassword(password)
	if err != nil {
		return nil, apperr.From(err, apperr.CodeBadRequest)
	}

	repo := s.repomanager.Accounts(s.db)
	account, err := repo.Create(ctx, &models.Account{
		UserName:     username,
		Email:        strings.ToLower(email),
		PasswordHash: hash,
	})
	if err != nil {
		return nil, apperr.From(err, apperr.CodeBadRequest)
	}

	return account, nil
}

// Login checks the credentials and issues a token. An unknown handle and a
// wrong password fail with the same error.
func (s *AccountService) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	errs := validation.Validate(validation.Record{
		"login":    login,
		"password": password,
	}, validation.LoginRules)
	if errs != nil {
		return nil, apperr.Validation(apperr.CodeUnauthenticated, errs)
	}

	repo := s.repomanager.Accounts(s.db)
	account, err := repo.FindByHandleOrEmail(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn a comparison so both failure paths cost the same
			s.creds.VerifyPassword(password, s.placeholderHash())
			return nil, apperr.New(apperr.CodeUnauthenticated, apperr.MsgInvalidCredentials)
		}
		return nil, apperr.From(err, apperr.CodeUnauthenticated)
	}

	if !s.creds.VerifyPassword(password, account.PasswordHash) {
		return nil, apperr.New(apperr.CodeUnauthenticated, apperr.MsgInvalidCredentials)
	}

	token, err := s.creds.IssueToken(account.ID, account.UserName)
	if err != nil {
		return nil, apperr.From(err, apperr.CodeUnauthenticated)
	}

	return &LoginResult{Token: token, Account: account}, nil
}

func (s *AccountService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.creds.HashPassword("placeholder-password")
	})
	return s.dummyHash
}
