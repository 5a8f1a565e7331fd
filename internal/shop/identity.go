package shop

import (
	"context"
	"fmt"
	"slices"
)

// Signup registers a user. Email comparison is exact and case-sensitive;
// a duplicate returns ErrEmailTaken.
//
// Passwords are stored and compared in plain text. That is the credential
// model of this system, kept deliberately; do not mistake it for an auth
// layer.
func (s *Store) Signup(ctx context.Context, email, username, password string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.snap.Users {
		if u.Email == email {
			return User{}, fmt.Errorf("user %s: %w", email, ErrEmailTaken)
		}
	}
	u := User{
		ID:       nextUserID(s.snap.Users),
		Email:    email,
		Username: username,
		Password: password,
	}
	next := s.snap
	next.Users = append(slices.Clone(s.snap.Users), u)
	if err := s.commit(ctx, next); err != nil {
		return User{}, err
	}
	return u, nil
}

// Login distinguishes an unknown email (ErrNotFound) from a wrong
// password (ErrInvalidCredentials).
func (s *Store) Login(email, password string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.snap.Users {
		if u.Email == email {
			if u.Password != password {
				return User{}, ErrInvalidCredentials
			}
			return u, nil
		}
	}
	return User{}, fmt.Errorf("user %s: %w", email, ErrNotFound)
}

// AdminLogin scans the seeded admin list; both email and password must
// match exactly.
func (s *Store) AdminLogin(email, password string) (Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.snap.Admins {
		if a.Email == email && a.Password == password {
			return a, nil
		}
	}
	return Admin{}, ErrInvalidCredentials
}

func nextUserID(users []User) int {
	max := 0
	for _, u := range users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}
