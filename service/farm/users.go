package farm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
)

// AddUser creates a user and, when password is non-empty, its bcrypt hash.
func (s *Service) AddUser(ctx context.Context, rec entity.User, password string) (*entity.User, error) {
	rec.Email = strings.TrimSpace(rec.Email)
	u, err := create(ctx, s, s.Users, rec)
	if err != nil {
		return nil, err
	}
	if password != "" {
		if err := s.SetPassword(ctx, u.UserID, password); err != nil {
			return u, err
		}
	}
	return u, nil
}

// SetPassword stores a new hash for userID, replacing any previous one.
func (s *Service) SetPassword(ctx context.Context, userID int, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	existing, err := s.Passwords.GetByID(ctx, "UserID", userID)
	if err != nil {
		return err
	}
	if existing != nil {
		_, err = s.Passwords.Update(ctx, "", existing.PasswordID, map[string]any{"PasswordHash": string(hash)})
		return err
	}
	_, err = s.Passwords.Create(ctx, map[string]any{"UserID": userID, "PasswordHash": string(hash)})
	return err
}

// Authenticate returns the active user whose email and password match.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, "Email", strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	p, err := s.Passwords.GetByID(ctx, "UserID", u.UserID)
	if err != nil {
		return nil, err
	}
	if p == nil || bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive() {
		return nil, ErrUserInactive
	}
	return u, nil
}

// SetUsersActive flips the Active flag on every listed user and returns the
// ids that exist.
func (s *Service) SetUsersActive(ctx context.Context, ids []int, active bool) ([]int, error) {
	var updated []int
	for _, id := range ids {
		u, err := s.Users.Update(ctx, "", id, map[string]any{"Active": active})
		if err != nil {
			return updated, err
		}
		if u != nil {
			updated = append(updated, id)
		}
	}
	if len(updated) > 0 {
		s.invalidate(ctx, s.Users.Descriptor().Table)
	}
	s.log.Info("set users active", "active", active, "requested", len(ids), "updated", len(updated))
	return updated, nil
}
