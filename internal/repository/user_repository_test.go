package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var userTestColumns = []string{
	"id", "username", "email", "password_hash", "first_name", "last_name",
	"avatar_url", "email_verified", "role", "preferences", "last_login_at",
	"created_at", "updated_at",
}

func TestUserList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users ORDER BY id DESC LIMIT ? OFFSET ?")).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(userTestColumns).
			AddRow(uint64(2), "bob", "bob@example.com", "$2a$04$secret", "Bob", "", "", true, "user", []byte(`{}`), nil, now, now).
			AddRow(uint64(1), "alice", "alice@example.com", "$2a$04$secret", "Alice", "", "", true, "admin", []byte(`{}`), now, now, now))

	users, total, err := repo.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if total != 2 || len(users) != 2 {
		t.Fatalf("List() = %d rows, total %d, want 2 and 2", len(users), total)
	}
	for _, u := range users {
		if u.PasswordHash != "" {
			t.Errorf("user %q carries a password hash in the listing", u.Username)
		}
	}
	if users[1].LastLoginAt == nil {
		t.Error("non-null last_login_at should be populated")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
