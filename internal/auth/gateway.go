// Package auth registers and signs in salon users. A registration creates a
// credential, names it and then persists the role's profile record; a
// failure after the credential exists deletes it again.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/BruksfildServices01/salon-scheduler/internal/datasource"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/remote"
	"github.com/BruksfildServices01/salon-scheduler/internal/saga"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

const (
	StepCreateCredential = "CREATE_CREDENTIAL"
	StepUpdateProfile    = "UPDATE_PROFILE"
	StepPersistRecord    = "PERSIST_RECORD"
)

type Options struct {
	MinPasswordLen int
	CheckEmailMX   bool
}

type Gateway struct {
	creds  Credentials
	source *datasource.Source
	tokens *TokenIssuer
	logger *slog.Logger
	opts   Options

	now         func() time.Time
	emailDomain func(string) bool
}

func NewGateway(
	creds Credentials,
	source *datasource.Source,
	tokens *TokenIssuer,
	logger *slog.Logger,
	opts Options,
) *Gateway {
	if opts.MinPasswordLen <= 0 {
		opts.MinPasswordLen = 6
	}
	return &Gateway{
		creds:       creds,
		source:      source,
		tokens:      tokens,
		logger:      logger,
		opts:        opts,
		now:         time.Now,
		emailDomain: validators.IsEmailDomainValid,
	}
}

// --------- Types ---------

type RegisterInput struct {
	Email      string
	Password   string
	FirstName  string
	MiddleName string
	LastName   string
	Phone      string
	Role       models.Role
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      models.User
}

// ProfileUpdate changes the non-nil fields of a profile.
type ProfileUpdate struct {
	FirstName  *string
	MiddleName *string
	LastName   *string
	Phone      *string
}

// --------- Register ---------

func (g *Gateway) Register(ctx context.Context, in RegisterInput) (Session, error) {
	in.Email = normalizeEmail(in.Email)
	if err := g.validateRegistration(in); err != nil {
		return Session{}, err
	}

	var (
		cred Credential
		user models.User
	)
	err := saga.Run(ctx, g.logger,
		saga.Step{
			Name: StepCreateCredential,
			Do: func(ctx context.Context) error {
				var err error
				cred, err = g.creds.Create(ctx, in.Email, in.Password)
				return err
			},
			Undo: func(ctx context.Context) error {
				return g.creds.Delete(ctx, cred.UID)
			},
		},
		saga.Step{
			Name: StepUpdateProfile,
			Do: func(ctx context.Context) error {
				return g.creds.SetDisplayName(ctx, cred.UID, fullName(in.FirstName, in.LastName))
			},
		},
		saga.Step{
			Name: StepPersistRecord,
			Do: func(ctx context.Context) error {
				var err error
				if user, err = g.newUser(cred.UID, in); err != nil {
					return err
				}
				return g.source.Put(ctx, datasource.UserPath(in.Role, cred.UID), newRecord(user))
			},
		},
	)
	if err != nil {
		return Session{}, err
	}

	g.logger.Info("user registered", "uid", cred.UID, "role", in.Role)

	// The account exists from here on; a failed read-back only costs the
	// server-resolved timestamps.
	stored, err := g.Profile(ctx, cred.UID, in.Role)
	if err != nil {
		g.logger.Warn("read back registered user", "uid", cred.UID, "error", err)
		return g.session(user)
	}
	return g.session(stored)
}

func (g *Gateway) validateRegistration(in RegisterInput) error {
	err := validation.Errors{
		"email":     validation.Validate(in.Email, validation.Required, is.EmailFormat),
		"password":  validation.Validate(in.Password, passwordRules(g.opts.MinPasswordLen)...),
		"firstName": validation.Validate(strings.TrimSpace(in.FirstName), validation.Required),
		"lastName":  validation.Validate(strings.TrimSpace(in.LastName), validation.Required),
		"role": validation.Validate(string(in.Role),
			validation.Required,
			validation.In(string(models.RoleClient), string(models.RoleBusinessAdmin), string(models.RoleDeveloperAdmin)),
		),
	}.Filter()
	if err != nil {
		return &models.ValidationError{Entity: "registration", Err: err}
	}

	if g.opts.CheckEmailMX && !g.emailDomain(in.Email) {
		return &models.ValidationError{
			Entity: "registration",
			Err:    validation.Errors{"email": errors.New("domain does not accept mail")},
		}
	}
	return nil
}

// newUser validates the profile registered for uid.
func (g *Gateway) newUser(uid string, in RegisterInput) (models.User, error) {
	now := g.now()
	p := models.Profile{
		UID:        uid,
		Email:      in.Email,
		FirstName:  strings.TrimSpace(in.FirstName),
		MiddleName: strings.TrimSpace(in.MiddleName),
		LastName:   strings.TrimSpace(in.LastName),
		Phone:      strings.TrimSpace(in.Phone),
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if in.Role.IsAdmin() {
		return models.NewAdminUser(p, in.Role, now)
	}
	return models.NewClientUser(p, "", nil)
}

// newRecord is the stored form of a new user. Timestamps are left to the
// store.
func newRecord(user models.User) map[string]any {
	record := user.ToMap()
	if _, ok := user.(models.AdminUser); ok {
		record["lastLoginAt"] = remote.ServerTimestamp
	}
	record["createdAt"] = remote.ServerTimestamp
	record["updatedAt"] = remote.ServerTimestamp
	return record
}

// --------- Login ---------

// Login verifies the credential and opens a session. For admins it also
// stamps lastLoginAt; a failed stamp is logged and does not fail the login.
func (g *Gateway) Login(ctx context.Context, email, password string) (Session, error) {
	cred, err := g.creds.Verify(ctx, normalizeEmail(email), password)
	if err != nil {
		return Session{}, err
	}

	admin, err := g.source.Admin(ctx, cred.UID)
	switch {
	case err == nil:
		if err := g.source.StampLastLogin(ctx, cred.UID); err != nil {
			g.logger.Warn("login stamp failed", "uid", cred.UID, "error", err)
		}
		return g.session(admin)
	case !datasource.IsNotFound(err):
		return Session{}, err
	}

	client, err := g.source.Client(ctx, cred.UID)
	if datasource.IsNotFound(err) {
		return Session{}, ErrNoProfile
	}
	if err != nil {
		return Session{}, err
	}
	return g.session(client)
}

func (g *Gateway) session(user models.User) (Session, error) {
	token, exp, err := g.tokens.Issue(user.UID(), user.Email(), user.Role())
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: exp, User: user}, nil
}

// --------- Profile ---------

func (g *Gateway) Profile(ctx context.Context, uid string, role models.Role) (models.User, error) {
	if role.IsAdmin() {
		admin, err := g.source.Admin(ctx, uid)
		if err != nil {
			return nil, err
		}
		return admin, nil
	}
	client, err := g.source.Client(ctx, uid)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (g *Gateway) UpdateProfile(
	ctx context.Context,
	uid string,
	role models.Role,
	upd ProfileUpdate,
) (models.User, error) {

	current, err := g.Profile(ctx, uid, role)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	rules := validation.Errors{}
	set := func(key string, v *string, required bool) {
		if v == nil {
			return
		}
		val := strings.TrimSpace(*v)
		if required {
			rules[key] = validation.Validate(val, validation.Required)
		}
		fields[key] = val
	}
	set("firstName", upd.FirstName, true)
	set("middleName", upd.MiddleName, false)
	set("lastName", upd.LastName, true)
	set("phone", upd.Phone, false)

	if err := rules.Filter(); err != nil {
		return nil, &models.ValidationError{Entity: "profile", Err: err}
	}
	if len(fields) == 0 {
		return current, nil
	}

	if err := g.source.Update(ctx, datasource.UserPath(role, uid), fields); err != nil {
		return nil, err
	}

	updated, err := g.Profile(ctx, uid, role)
	if err != nil {
		return nil, err
	}
	if err := g.creds.SetDisplayName(ctx, uid, updated.FullName()); err != nil {
		g.logger.Warn("display name sync failed", "uid", uid, "error", err)
	}
	return updated, nil
}

// --------- Password reset ---------

// RequestPasswordReset returns a reset token for email, or an empty token
// when no credential uses it. The token is bound to the current password,
// so it stops working once the password changes.
func (g *Gateway) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	cred, err := g.creds.Lookup(ctx, normalizeEmail(email))
	if errors.Is(err, ErrCredentialNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return g.tokens.IssueReset(cred.UID, cred.PasswordStamp)
}

func (g *Gateway) ResetPassword(ctx context.Context, token, password string) error {
	claims, err := g.tokens.ParseReset(token)
	if err != nil {
		return err
	}
	if err := validation.Validate(password, passwordRules(g.opts.MinPasswordLen)...); err != nil {
		return &models.ValidationError{Entity: "password", Err: err}
	}

	cred, err := g.creds.Get(ctx, claims.UID)
	if errors.Is(err, ErrCredentialNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return err
	}
	if err := g.tokens.CheckResetStamp(claims, cred.PasswordStamp); err != nil {
		return err
	}
	return g.creds.SetPassword(ctx, claims.UID, password)
}

// --------- Helpers ---------

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

func passwordRules(minLen int) []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.RuneLength(minLen, 0),
		validation.Length(0, maxPasswordBytes).Error("must be at most 72 bytes"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func fullName(first, last string) string {
	return strings.Join(strings.Fields(first+" "+last), " ")
}
