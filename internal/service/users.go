package service

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/a3health/a3diet/internal/model"
	"github.com/google/uuid"
)

const (
	RoleClient    = "client"
	RoleInsurance = "insurance"
	RoleMNC       = "mnc"
)

func CreateUser(db *sql.DB, name, role string) (model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.User{}, invalidf("user name is required")
	}
	role = normalizeName(role)
	if role == "" {
		role = RoleClient
	}
	switch role {
	case RoleClient, RoleInsurance, RoleMNC:
	default:
		return model.User{}, invalidf("invalid role %q (use client, insurance, or mnc)", role)
	}

	externalID := uuid.NewString()
	res, err := db.Exec(`INSERT INTO users(external_id, name, role) VALUES(?, ?, ?)`, externalID, name, role)
	if err != nil {
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("resolve user id: %w", err)
	}
	return GetUser(db, id)
}

func GetUser(db *sql.DB, id int64) (model.User, error) {
	var u model.User
	err := db.QueryRow(`SELECT id, external_id, name, role, created_at FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.ExternalID, &u.Name, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, notFoundf("user %d", id)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// ResolveUser accepts a numeric id or an external UUID.
func ResolveUser(db *sql.DB, ref string) (model.User, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.User{}, invalidf("user is required")
	}
	if id, err := ParseID(ref); err == nil {
		return GetUser(db, id)
	}
	if _, err := uuid.Parse(ref); err != nil {
		return model.User{}, invalidf("invalid user reference %q", ref)
	}
	var u model.User
	err := db.QueryRow(`SELECT id, external_id, name, role, created_at FROM users WHERE external_id = ?`, ref).
		Scan(&u.ID, &u.ExternalID, &u.Name, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, notFoundf("user %s", ref)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user %s: %w", ref, err)
	}
	return u, nil
}

func ListUsers(db *sql.DB) ([]model.User, error) {
	rows, err := db.Query(`SELECT id, external_id, name, role, created_at FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	out := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.ExternalID, &u.Name, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

// ParseID parses a positive numeric row id.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidf("invalid id %q", value)
	}
	return id, nil
}
