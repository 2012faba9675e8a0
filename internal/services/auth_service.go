package services

import (
	"context"
	"errors"
	"strings"

	"storeadmin/internal/apiclient"
	"storeadmin/internal/domain"
	"storeadmin/internal/repos"
)

var (
	ErrBadCreds     = errors.New("invalid username or password")
	ErrMissingCreds = errors.New("username and password are required")
)

type AccountAPI interface {
	Login(ctx context.Context, cr domain.Credentials) (string, error)
}

// AuthService is the single source of auth state, keyed by session id.
type AuthService struct {
	API      AccountAPI
	Sessions repos.SessionRepo
}

func NewAuthService(api AccountAPI, sessions repos.SessionRepo) *AuthService {
	return &AuthService{API: api, Sessions: sessions}
}

// Login exchanges the credentials for a token and persists it for sid.
// Rejections by the store API become ErrBadCreds; transport and server
// failures are returned as-is.
func (s *AuthService) Login(ctx context.Context, sid, user, password string) error {
	user = strings.TrimSpace(user)
	if user == "" || password == "" {
		return ErrMissingCreds
	}
	tok, err := s.API.Login(ctx, domain.Credentials{UserName: user, Password: password})
	if err != nil {
		switch apiclient.KindOf(err) {
		case apiclient.KindClient, apiclient.KindValidation:
			return ErrBadCreds
		}
		return err
	}
	return s.Sessions.Save(ctx, domain.Session{ID: sid, UserName: user, Token: tok, Authenticated: true})
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.Sessions.Delete(ctx, sid)
}

func (s *AuthService) Session(ctx context.Context, sid string) (domain.Session, error) {
	return s.Sessions.Get(ctx, sid)
}

func (s *AuthService) IsAuthenticated(ctx context.Context, sid string) bool {
	if sid == "" {
		return false
	}
	sess, err := s.Sessions.Get(ctx, sid)
	return err == nil && sess.Authenticated
}

// Token returns the bearer token of sid, or "" when not signed in.
func (s *AuthService) Token(ctx context.Context, sid string) string {
	sess, err := s.Sessions.Get(ctx, sid)
	if err != nil || !sess.Authenticated {
		return ""
	}
	return sess.Token
}
