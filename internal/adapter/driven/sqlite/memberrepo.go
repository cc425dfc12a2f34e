package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/model"
	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.MemberStore = (*MemberRepo)(nil)

// MemberRepo is the SQLite implementation of the MemberStore port interface.
// The email column is COLLATE NOCASE, so lookups match case-insensitively.
type MemberRepo struct {
	db *DB
}

// NewMemberRepo creates a new MemberRepo backed by the given DB.
func NewMemberRepo(db *DB) *MemberRepo {
	return &MemberRepo{db: db}
}

// GetByEmail retrieves a member by email. Returns driven.ErrMemberNotFound
// if no account exists.
func (r *MemberRepo) GetByEmail(ctx context.Context, email string) (*model.Member, error) {
	const query = `SELECT id, email, name, password_hash, created_at FROM members WHERE email = ?`

	member, err := scanMember(r.db.Reader.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get member by email: %w", driven.ErrMemberNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get member by email: %w", err)
	}

	return member, nil
}

// GetByID retrieves a member by id. Returns driven.ErrMemberNotFound if no
// account exists.
func (r *MemberRepo) GetByID(ctx context.Context, id string) (*model.Member, error) {
	const query = `SELECT id, email, name, password_hash, created_at FROM members WHERE id = ?`

	member, err := scanMember(r.db.Reader.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get member %s: %w", id, driven.ErrMemberNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get member %s: %w", id, err)
	}

	return member, nil
}

// Add inserts a new member account.
func (r *MemberRepo) Add(ctx context.Context, member model.Member) error {
	const query = `INSERT INTO members (id, email, name, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`

	createdAt := member.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.Writer.ExecContext(ctx, query,
		member.ID, member.Email, member.Name, member.PasswordHash, createdAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("add member %s: %w", member.Email, err)
	}

	return nil
}

func scanMember(s scanner) (*model.Member, error) {
	var member model.Member
	var createdAt string

	err := s.Scan(&member.ID, &member.Email, &member.Name, &member.PasswordHash, &createdAt)
	if err != nil {
		return nil, err
	}

	member.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	return &member, nil
}
