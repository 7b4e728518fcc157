package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/skillpath/skillpath/internal/model"
	"github.com/skillpath/skillpath/internal/utils"
)

// UserRepo encapsulates all database queries related to user accounts.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,username,email,password_hash,first_name,last_name,avatar_url,email_verified,role,preferences,last_login_at,created_at,updated_at"

// scanUser reads one row into a model.User, decoding the preferences JSON
// column.
func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var (
		u         model.User
		prefs     []byte
		lastLogin sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.AvatarURL, &u.EmailVerified,
		&u.Role, &prefs, &lastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLoginAt = &t
	}
	u.Preferences = model.DefaultPreferences()
	if len(prefs) > 0 {
		_ = json.Unmarshal(prefs, &u.Preferences)
	}
	return u, nil
}

// Create inserts a user and returns its ID.  The password is hashed here so
// a plain-text password never reaches a query.  Duplicate username/email
// map to field-specific sentinel errors.
func (r *UserRepo) Create(ctx context.Context, u *model.User, password string, cost int) (uint64, error) {
	u.Email = utils.NormalizeEmail(u.Email)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	prefs, err := json.Marshal(u.Preferences)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username,email,password_hash,first_name,last_name,avatar_url,email_verified,role,preferences) VALUES (?,?,?,?,?,?,?,?,?)",
		u.Username, u.Email, hash, u.FirstName, u.LastName, u.AvatarURL, u.EmailVerified, u.Role, prefs)
	if err != nil {
		return 0, dupError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	u.ID = uint64(id)
	u.PasswordHash = hash
	return u.ID, nil
}

// dupError maps a MySQL 1062 duplicate-key error onto the field-specific
// sentinel by inspecting the violated index name.
func dupError(err error) error {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "1062") {
		return err
	}
	if strings.Contains(msg, "email") {
		return ErrEmailExists
	}
	return ErrUsernameExists
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByIdentifier fetches a user by username or normalized email.  Login
// accepts either form in one field.
func (r *UserRepo) GetByIdentifier(ctx context.Context, identifier string) (model.User, error) {
	ident := strings.TrimSpace(identifier)
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? OR email=? LIMIT 1",
		ident, utils.NormalizeEmail(ident)))
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// UsernameExists reports whether a username is already taken.
func (r *UserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE username=?", username).Scan(&n)
	return n > 0, err
}

// EmailExists reports whether a normalized email is already taken.
func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE email=?", utils.NormalizeEmail(email)).Scan(&n)
	return n > 0, err
}

// List pages through all accounts, newest first.  Admin-only surface.
func (r *UserRepo) List(ctx context.Context, page, pageSize int) ([]model.User, int64, error) {
	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id DESC LIMIT ? OFFSET ?",
		pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.User, 0, pageSize)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		u.PasswordHash = ""
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// TouchLastLogin records a successful login.
func (r *UserRepo) TouchLastLogin(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET last_login_at=UTC_TIMESTAMP() WHERE id=?", id)
	return err
}

// UpdateProfile replaces the mutable profile fields.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, firstName, lastName, avatarURL string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET first_name=?, last_name=?, avatar_url=? WHERE id=?",
		firstName, lastName, avatarURL, id)
	return err
}

// UpdatePreferences replaces the preferences JSON column.
func (r *UserRepo) UpdatePreferences(ctx context.Context, id uint64, p model.Preferences) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE users SET preferences=? WHERE id=?", raw, id)
	return err
}

// UpdatePassword replaces the stored hash.  Callers are responsible for
// verifying the current password first and for revoking refresh tokens.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=? WHERE id=?", hash, id)
	return err
}

// Delete hard-deletes a user row.  Roadmaps and refresh tokens belonging to
// the user are removed by the caller in the same flow.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
