package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"storeadmin/internal/domain"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepo persists the auth state of console sessions.
type SessionRepo interface {
	Save(ctx context.Context, s domain.Session) error
	Get(ctx context.Context, sid string) (domain.Session, error)
	Delete(ctx context.Context, sid string) error
}

type SQLSessionRepo struct{ DB *sqlx.DB }

func NewSQLSessionRepo(db *sqlx.DB) *SQLSessionRepo { return &SQLSessionRepo{DB: db} }

func (r *SQLSessionRepo) Save(ctx context.Context, s domain.Session) error {
	_, err := r.DB.ExecContext(ctx, `INSERT INTO sessions(id,user_name,token,authenticated,last_seen)
                          VALUES(?,?,?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_name=excluded.user_name,token=excluded.token,
                            authenticated=excluded.authenticated,last_seen=CURRENT_TIMESTAMP`,
		s.ID, s.UserName, s.Token, s.Authenticated)
	return err
}

func (r *SQLSessionRepo) Get(ctx context.Context, sid string) (domain.Session, error) {
	var s domain.Session
	err := r.DB.GetContext(ctx, &s, `SELECT id,user_name,token,authenticated FROM sessions WHERE id=?`, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, ErrSessionNotFound
	}
	return s, err
}

// Delete clears the auth state; deleting an unknown sid is not an error.
func (r *SQLSessionRepo) Delete(ctx context.Context, sid string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id=?`, sid)
	return err
}
