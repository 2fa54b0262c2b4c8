package domain

import "time"

// User represents a registered account together with its reading history.
// Books are embedded rather than stored separately because the history is
// small, always read as a whole, and never shared between users.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	Books        []Book    `json:"books"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastLoginAt  time.Time `json:"last_login_at,omitempty"`
}

// Touch updates the UpdatedAt timestamp to the current time.
// Call this whenever the underlying entity changes.
func (u *User) Touch() {
	u.UpdatedAt = time.Now()
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
// Call this when creating a new entity.
func (u *User) InitTimestamps() {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
}

// NextBookID returns the ID to assign to a newly added book:
// one greater than the highest ID currently in the history.
func (u *User) NextBookID() int {
	maxID := 0
	for _, b := range u.Books {
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	return maxID + 1
}

// FindBook returns the book with the given ID, or nil if the user
// has not recorded it.
func (u *User) FindBook(id int) *Book {
	for i := range u.Books {
		if u.Books[i].ID == id {
			return &u.Books[i]
		}
	}
	return nil
}

// HasRead reports whether the user's history already contains a book
// with the given name and author, compared in normalized form.
func (u *User) HasRead(name, author string) bool {
	for i := range u.Books {
		if u.Books[i].Matches(name, author) {
			return true
		}
	}
	return false
}

// HasReadGenre reports whether the user has recorded at least one book
// in the given genre.
func (u *User) HasReadGenre(genre Genre) bool {
	for i := range u.Books {
		if u.Books[i].Genre == string(genre) {
			return true
		}
	}
	return false
}

// RemoveBook deletes the book with the given ID from the history and
// reports whether it was present.
func (u *User) RemoveBook(id int) bool {
	for i := range u.Books {
		if u.Books[i].ID == id {
			u.Books = append(u.Books[:i], u.Books[i+1:]...)
			return true
		}
	}
	return false
}
