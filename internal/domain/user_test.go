package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	validUsername := "alice"
	validEmail := "alice@example.com"
	validPassword := "correct horse battery"

	user, err := NewUser(validUsername, validEmail, validPassword)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Username != validUsername {
		t.Errorf("Expected username %s, got %s", validUsername, user.Username)
	}

	if user.Email != validEmail {
		t.Errorf("Expected email %s, got %s", validEmail, user.Email)
	}

	if user.Password != validPassword {
		t.Errorf("Expected plaintext password to be carried, got %q", user.Password)
	}

	if user.HashedPassword != "" {
		t.Errorf("Expected no hashed password yet, got %q", user.HashedPassword)
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if user.UpdatedAt.IsZero() {
		t.Error("Expected non-zero UpdatedAt time")
	}

	// Leading and trailing whitespace is stripped from identity fields.
	user, err = NewUser("  bob  ", " bob@example.com ", validPassword)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Username != "bob" {
		t.Errorf("Expected trimmed username, got %q", user.Username)
	}
	if user.Email != "bob@example.com" {
		t.Errorf("Expected trimmed email, got %q", user.Email)
	}

	// Invalid usernames.
	if _, err = NewUser("", validEmail, validPassword); !errors.Is(err, ErrEmptyUsername) {
		t.Errorf("Expected error %v, got %v", ErrEmptyUsername, err)
	}
	if _, err = NewUser("al", validEmail, validPassword); !errors.Is(err, ErrUsernameTooShort) {
		t.Errorf("Expected error %v, got %v", ErrUsernameTooShort, err)
	}
	if _, err = NewUser(strings.Repeat("a", 33), validEmail, validPassword); !errors.Is(err, ErrUsernameTooLong) {
		t.Errorf("Expected error %v, got %v", ErrUsernameTooLong, err)
	}

	// Invalid emails.
	if _, err = NewUser(validUsername, "", validPassword); !errors.Is(err, ErrEmptyEmail) {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}
	if _, err = NewUser(validUsername, "invalidemail", validPassword); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	// Invalid passwords.
	if _, err = NewUser(validUsername, validEmail, ""); !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
	if _, err = NewUser(validUsername, validEmail, "tooshort"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooShort, err)
	}
	if _, err = NewUser(validUsername, validEmail, strings.Repeat("p", 73)); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooLong, err)
	}
}

func TestUserValidate(t *testing.T) {
	validUser := User{
		ID:             uuid.New(),
		Username:       "alice",
		Email:          "alice@example.com",
		HashedPassword: "$2a$10$notarealhashbutlongenough",
	}

	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalidUser := validUser
	invalidUser.ID = uuid.Nil
	if err := invalidUser.Validate(); err != ErrEmptyUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserID, err)
	}

	invalidUser = validUser
	invalidUser.Username = ""
	if err := invalidUser.Validate(); err != ErrEmptyUsername {
		t.Errorf("Expected error %v, got %v", ErrEmptyUsername, err)
	}

	invalidUser = validUser
	invalidUser.Email = "invalidemail"
	if err := invalidUser.Validate(); err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	// A stored user carries only the hash; losing it is an error.
	invalidUser = validUser
	invalidUser.HashedPassword = ""
	if err := invalidUser.Validate(); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
}

func TestValidEmailFormat(t *testing.T) {
	validEmails := []string{
		"user@example.com",
		"user.name@example.com",
		"user+tag@example.com",
		"user@sub.example.com",
	}

	invalidEmails := []string{
		"",
		"userexample.com",
		"user@",
		"@example.com",
		"user@.com",
		"user@example",
		"user@example.",
	}

	for _, email := range validEmails {
		if !validEmailFormat(email) {
			t.Errorf("Expected email %s to be valid", email)
		}
	}

	for _, email := range invalidEmails {
		if validEmailFormat(email) {
			t.Errorf("Expected email %s to be invalid", email)
		}
	}
}
