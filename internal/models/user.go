package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Role string

const (
	RoleBusinessAdmin  Role = "BUSINESS_ADMIN"
	RoleDeveloperAdmin Role = "DEVELOPER_ADMIN"
	RoleClient         Role = "CLIENT"
)

func (r Role) IsAdmin() bool {
	return r == RoleBusinessAdmin || r == RoleDeveloperAdmin
}

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleBusinessAdmin, RoleDeveloperAdmin, RoleClient:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User is implemented by AdminUser and ClientUser only.
type User interface {
	UID() string
	Email() string
	FirstName() string
	MiddleName() string
	LastName() string
	FullName() string
	Phone() string
	Role() Role
	IsActive() bool
	CreatedAt() time.Time
	UpdatedAt() time.Time
	ToMap() map[string]any

	isUser()
}

// Profile carries the fields shared by every user variant.
type Profile struct {
	UID        string
	Email      string
	FirstName  string
	MiddleName string
	LastName   string
	Phone      string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

var now = time.Now

func (p Profile) rules() validation.Errors {
	return validation.Errors{
		"uid": validation.Validate(p.UID, validation.Required),
		"email": validation.Validate(p.Email,
			validation.Required,
			validation.By(func(any) error {
				if !strings.Contains(p.Email, "@") {
					return errors.New("must contain @")
				}
				return nil
			}),
		),
		"firstName": validation.Validate(strings.TrimSpace(p.FirstName), validation.Required),
		"lastName":  validation.Validate(strings.TrimSpace(p.LastName), validation.Required),
		"createdAt": validation.Validate(p.CreatedAt, validation.By(func(any) error {
			if p.CreatedAt.After(now()) {
				return errors.New("cannot be in the future")
			}
			return nil
		})),
	}
}

func (p Profile) FullName() string {
	return strings.Join(strings.Fields(p.FirstName+" "+p.LastName), " ")
}

type profile struct {
	p Profile
}

func (u profile) UID() string          { return u.p.UID }
func (u profile) Email() string        { return u.p.Email }
func (u profile) FirstName() string    { return u.p.FirstName }
func (u profile) MiddleName() string   { return u.p.MiddleName }
func (u profile) LastName() string     { return u.p.LastName }
func (u profile) FullName() string     { return u.p.FullName() }
func (u profile) Phone() string        { return u.p.Phone }
func (u profile) IsActive() bool       { return u.p.IsActive }
func (u profile) CreatedAt() time.Time { return u.p.CreatedAt }
func (u profile) UpdatedAt() time.Time { return u.p.UpdatedAt }
func (u profile) Profile() Profile     { return u.p }
func (profile) isUser()                {}

func (u profile) baseMap(role Role) map[string]any {
	m := map[string]any{
		"uid":       u.p.UID,
		"email":     u.p.Email,
		"firstName": u.p.FirstName,
		"lastName":  u.p.LastName,
		"isActive":  u.p.IsActive,
		"role":      string(role),
	}
	putString(m, "middleName", u.p.MiddleName)
	putString(m, "phone", u.p.Phone)
	putTime(m, "createdAt", u.p.CreatedAt)
	putTime(m, "updatedAt", u.p.UpdatedAt)
	return m
}

type AdminUser struct {
	profile
	role        Role
	lastLoginAt time.Time
}

func NewAdminUser(p Profile, role Role, lastLoginAt time.Time) (AdminUser, error) {
	errs := p.rules()
	errs["role"] = validation.Validate(role, validation.By(func(any) error {
		if !role.IsAdmin() {
			return fmt.Errorf("%q is not an admin role", role)
		}
		return nil
	}))
	if err := errs.Filter(); err != nil {
		return AdminUser{}, invalid("admin user", err)
	}
	return AdminUser{profile: profile{p: p}, role: role, lastLoginAt: lastLoginAt}, nil
}

func (a AdminUser) Role() Role             { return a.role }
func (a AdminUser) LastLoginAt() time.Time { return a.lastLoginAt }

func (a AdminUser) WithLastLogin(at time.Time) AdminUser {
	a.lastLoginAt = at
	return a
}

func (a AdminUser) ToMap() map[string]any {
	m := a.baseMap(a.role)
	putTime(m, "lastLoginAt", a.lastLoginAt)
	return m
}

type ClientUser struct {
	profile
	notes             string
	preferredServices []string
}

func NewClientUser(p Profile, notes string, preferredServices []string) (ClientUser, error) {
	errs := p.rules()
	errs["preferredServices"] = checkPreferred(preferredServices)
	if err := errs.Filter(); err != nil {
		return ClientUser{}, invalid("client user", err)
	}
	return ClientUser{
		profile:           profile{p: p},
		notes:             notes,
		preferredServices: append([]string(nil), preferredServices...),
	}, nil
}

func checkPreferred(ids []string) error {
	for _, id := range ids {
		if blank(id) {
			return errors.New("must not contain blank service ids")
		}
	}
	return nil
}

func (c ClientUser) Role() Role    { return RoleClient }
func (c ClientUser) Notes() string { return c.notes }

func (c ClientUser) PreferredServices() []string {
	return append([]string(nil), c.preferredServices...)
}

func (c ClientUser) WithPreferredServices(ids []string) (ClientUser, error) {
	if err := checkPreferred(ids); err != nil {
		return ClientUser{}, invalid("client user", validation.Errors{"preferredServices": err})
	}
	c.preferredServices = append([]string(nil), ids...)
	return c, nil
}

func (c ClientUser) ToMap() map[string]any {
	m := c.baseMap(RoleClient)
	putString(m, "notes", c.notes)
	if len(c.preferredServices) > 0 {
		m["preferredServices"] = append([]string(nil), c.preferredServices...)
	}
	return m
}

func profileFromMap(key string, m map[string]any) (Profile, error) {
	createdAt, err := timeAt(m, "createdAt")
	if err != nil {
		return Profile{}, err
	}
	updatedAt, err := timeAt(m, "updatedAt")
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		UID:        orDefault(str(m, "uid"), key),
		Email:      str(m, "email"),
		FirstName:  str(m, "firstName"),
		MiddleName: str(m, "middleName"),
		LastName:   str(m, "lastName"),
		Phone:      str(m, "phone"),
		IsActive:   boolOr(m, "isActive", true),
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

func AdminUserFromMap(key string, m map[string]any) (AdminUser, error) {
	p, err := profileFromMap(key, m)
	if err != nil {
		return AdminUser{}, err
	}
	lastLogin, err := timeAt(m, "lastLoginAt")
	if err != nil {
		return AdminUser{}, err
	}
	return NewAdminUser(p, Role(str(m, "role")), lastLogin)
}

func ClientUserFromMap(key string, m map[string]any) (ClientUser, error) {
	p, err := profileFromMap(key, m)
	if err != nil {
		return ClientUser{}, err
	}
	if r := str(m, "role"); r != "" && Role(r) != RoleClient {
		return ClientUser{}, invalid("client user", validation.Errors{"role": fmt.Errorf("%q is not the client role", r)})
	}
	return NewClientUser(p, str(m, "notes"), stringList(m["preferredServices"]))
}

// UserFromMap picks the variant from the stored role.
func UserFromMap(key string, m map[string]any) (User, error) {
	role, err := ParseRole(str(m, "role"))
	if err != nil {
		return nil, invalid("user", validation.Errors{"role": err})
	}
	if role.IsAdmin() {
		admin, err := AdminUserFromMap(key, m)
		if err != nil {
			return nil, err
		}
		return admin, nil
	}
	client, err := ClientUserFromMap(key, m)
	if err != nil {
		return nil, err
	}
	return client, nil
}
