package model

import "encoding/json"

type User struct {
	ID        string  `json:"_id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Role      string  `json:"role,omitempty"`
	RoleID    string  `json:"roleId,omitempty"`
	ImageID   *string `json:"public_id,omitempty"`
	ImageURL  *string `json:"secure_url,omitempty"`
	PushToken *string `json:"pushToken,omitempty"`
}

// UnmarshalJSON accepts the user id under either "_id" or "id".
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var aux struct {
		plain
		AltID string `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*u = User(aux.plain)
	if u.ID == "" {
		u.ID = aux.AltID
	}
	return nil
}

func (u User) IsAdmin() bool {
	return u.Role == "admin" || u.RoleID == "admin"
}

func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// Session is the authenticated state persisted across restarts.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Registration struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword,omitempty" validate:"eqfield=Password"`
}

// AuthResult is the {token, user} payload of /auth/login and /auth/register.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UserUpdate struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitnil,min=1"`
	LastName  *string `json:"lastName,omitempty" validate:"omitnil,min=1"`
	Email     *string `json:"email,omitempty" validate:"omitnil,email"`
	ImageID   *string `json:"public_id,omitempty"`
	ImageURL  *string `json:"secure_url,omitempty"`
	PushToken *string `json:"pushToken,omitempty"`
}
