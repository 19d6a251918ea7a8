package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/lshigami/academe/internal/apperr"
	"github.com/lshigami/academe/internal/dto"
	"github.com/lshigami/academe/internal/model"
	"github.com/lshigami/academe/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeGoogleVerifier struct {
	claims *GoogleClaims
	err    error
}

func (f *fakeGoogleVerifier) Verify(string) (*GoogleClaims, error) {
	return f.claims, f.err
}

func newAuthService(db *gorm.DB, verifier GoogleVerifier) *AuthService {
	if verifier == nil {
		verifier = &fakeGoogleVerifier{err: apperr.Unauthorized("invalid Google token")}
	}
	return NewAuthService(repository.NewUserRepository(db), verifier, testConfig())
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, nil)

	registered, err := svc.Register(dto.RegisterRequest{
		Email:     "new@example.com",
		Password:  "hunter2hunter2",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      "instructor",
	})
	require.NoError(t, err)
	assert.Equal(t, "instructor", registered.User.Role)
	assert.NotEmpty(t, registered.Token)

	loggedIn, err := svc.Login(dto.LoginRequest{Email: "new@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	_, err = svc.Login(dto.LoginRequest{Email: "new@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, nil)

	req := dto.RegisterRequest{Email: "dup@example.com", Password: "hunter2hunter2", FirstName: "A", LastName: "B"}
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindRuleViolation))
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, nil)

	_, err := svc.Register(dto.RegisterRequest{Email: "a@example.com", Password: "hunter2hunter2", FirstName: "A", LastName: "B", Role: "admin"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestGenerateTokenClaims(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, nil)
	user := createUser(t, db, "claims@example.com", model.RoleStudent)

	signed, err := svc.GenerateToken(user)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(user.ID), claims["userId"])
	assert.Equal(t, "claims@example.com", claims["email"])
	assert.Equal(t, "student", claims["role"])
}

func TestGoogleLoginCreatesStudent(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, &fakeGoogleVerifier{claims: &GoogleClaims{
		Subject:    "google-sub-1",
		Email:      "g@example.com",
		GivenName:  "Gee",
		FamilyName: "User",
	}})

	resp, err := svc.GoogleLogin(dto.GoogleAuthRequest{Token: "whatever"})
	require.NoError(t, err)
	assert.True(t, resp.IsNewUser)
	assert.Equal(t, "student", resp.User.Role)
	assert.True(t, resp.User.IsGoogleUser)

	// Second sign-in finds the same account.
	again, err := svc.GoogleLogin(dto.GoogleAuthRequest{Token: "whatever"})
	require.NoError(t, err)
	assert.False(t, again.IsNewUser)
	assert.Equal(t, resp.User.ID, again.User.ID)
}

func TestGoogleLoginLinksExistingEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, nil)

	registered, err := svc.Register(dto.RegisterRequest{Email: "link@example.com", Password: "hunter2hunter2", FirstName: "L", LastName: "K"})
	require.NoError(t, err)

	svc = newAuthService(db, &fakeGoogleVerifier{claims: &GoogleClaims{Subject: "google-sub-2", Email: "link@example.com"}})
	resp, err := svc.GoogleLogin(dto.GoogleAuthRequest{Token: "whatever"})
	require.NoError(t, err)
	assert.False(t, resp.IsNewUser)
	assert.Equal(t, registered.User.ID, resp.User.ID)

	// Password login still works after linking.
	svc = newAuthService(db, nil)
	_, err = svc.Login(dto.LoginRequest{Email: "link@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, nil)

	registered, err := svc.Register(dto.RegisterRequest{Email: "pw@example.com", Password: "hunter2hunter2", FirstName: "P", LastName: "W"})
	require.NoError(t, err)
	principal := model.Principal{ID: registered.User.ID, Email: registered.User.Email, Role: model.RoleStudent}

	err = svc.ChangePassword(principal, dto.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "n3wpassword!"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	require.NoError(t, svc.ChangePassword(principal, dto.ChangePasswordRequest{OldPassword: "hunter2hunter2", NewPassword: "n3wpassword!"}))

	_, err = svc.Login(dto.LoginRequest{Email: "pw@example.com", Password: "n3wpassword!"})
	require.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, nil)
	user := createUser(t, db, "profile@example.com", model.RoleStudent)

	bio := "gopher"
	first := "Grace"
	resp, err := svc.UpdateProfile(principalOf(user), dto.UpdateProfileRequest{FirstName: &first, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Grace", resp.FirstName)
	assert.Equal(t, "gopher", resp.Bio)
	// Untouched fields survive.
	assert.Equal(t, "User", resp.LastName)
}
