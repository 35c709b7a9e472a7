package user

import "time"

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile is the shape that crosses the service boundary. It never carries
// the password hash.
type Profile struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// CreateRequest holds validated, normalized registration input.
type CreateRequest struct {
	Email    string
	Name     string
	Password string
}

// Credentials holds validated login input.
type Credentials struct {
	Email    string
	Password string
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Email    *string
	Name     *string
	Password *string
}

func (p Patch) Empty() bool {
	return p.Email == nil && p.Name == nil && p.Password == nil
}

// DigestPatch is the persistence-level form of Patch: the plaintext password
// has already been replaced by its digest.
type DigestPatch struct {
	Email          *string
	Name           *string
	PasswordDigest *string
}
