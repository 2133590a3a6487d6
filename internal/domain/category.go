package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category validation errors. All wrap ErrValidation.
var (
	ErrEmptyCategoryID     = fmt.Errorf("%w: category ID cannot be empty", ErrValidation)
	ErrEmptyCategoryUserID = fmt.Errorf("%w: category user ID cannot be empty", ErrValidation)
	ErrEmptyCategoryName   = fmt.Errorf("%w: category name cannot be empty", ErrValidation)
	ErrCategoryNameTooLong = fmt.Errorf("%w: category name must be at most 100 characters long", ErrValidation)
)

// Category is a user-defined label for grouping tasks. Names are unique
// per owner, not globally; two users can both have a "Work" category.
type Category struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCategory creates a Category owned by userID.
func NewCategory(userID uuid.UUID, name string) (*Category, error) {
	now := time.Now().UTC()
	category := &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks the Category's fields, returning the first failure found.
func (c *Category) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCategoryID
	}
	if c.UserID == uuid.Nil {
		return ErrEmptyCategoryUserID
	}
	if c.Name == "" {
		return ErrEmptyCategoryName
	}
	if len(c.Name) > 100 {
		return ErrCategoryNameTooLong
	}
	return nil
}

// Rename changes the category's name and bumps UpdatedAt. If the new name
// fails validation the category is left unchanged.
func (c *Category) Rename(name string) error {
	prev := *c
	c.Name = strings.TrimSpace(name)

	if err := c.Validate(); err != nil {
		*c = prev
		return err
	}

	c.UpdatedAt = time.Now().UTC()
	return nil
}
