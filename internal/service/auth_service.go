package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/lshigami/academe/config"
	"github.com/lshigami/academe/internal/apperr"
	"github.com/lshigami/academe/internal/dto"
	"github.com/lshigami/academe/internal/model"
	"github.com/lshigami/academe/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo repository.UserRepository
	verifier GoogleVerifier
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, verifier GoogleVerifier, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, verifier: verifier, cfg: cfg}
}

func (s *AuthService) Register(req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, apperr.RuleViolation("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := model.Role(req.Role)
	if req.Role == "" {
		role = model.RoleStudent
	}
	if !role.Valid() || role == model.RoleAdmin {
		return nil, apperr.Validation("invalid role")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Email:     req.Email,
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	}
	if err := s.userRepo.Create(&user); err != nil {
		return nil, err
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return nil, err
	}

	log.Info().Uint("user_id", user.ID).Str("role", string(user.Role)).Msg("User registered")
	return &dto.AuthResponse{
		User:    toUserResponse(&user),
		Token:   token,
		Message: "registration successful",
	}, nil
}

func (s *AuthService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("invalid credentials")
		}
		return nil, err
	}
	if user.Password == "" {
		// Google-only account, no password to compare.
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		User:    toUserResponse(user),
		Token:   token,
		Message: "login successful",
	}, nil
}

// GoogleLogin verifies a Google ID token and signs the user in, linking the
// Google identity to an existing account with the same email or creating a
// fresh student account on first sign-in.
func (s *AuthService) GoogleLogin(req dto.GoogleAuthRequest) (*dto.AuthResponse, error) {
	claims, err := s.verifier.Verify(req.Token)
	if err != nil {
		return nil, err
	}

	isNew := false
	user, err := s.userRepo.FindByGoogleID(claims.Subject)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = s.userRepo.FindByEmail(claims.Email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = &model.User{
				Email:        claims.Email,
				FirstName:    claims.GivenName,
				LastName:     claims.FamilyName,
				Role:         model.RoleStudent,
				GoogleID:     &claims.Subject,
				IsGoogleUser: true,
				AvatarURL:    claims.Picture,
			}
			if err := s.userRepo.Create(user); err != nil {
				return nil, err
			}
			isNew = true
			log.Info().Uint("user_id", user.ID).Msg("User created via Google sign-in")
		} else if err != nil {
			return nil, err
		} else {
			user.GoogleID = &claims.Subject
			user.IsGoogleUser = true
			if user.AvatarURL == "" {
				user.AvatarURL = claims.Picture
			}
			if err := s.userRepo.Update(user); err != nil {
				return nil, err
			}
		}
	} else if err != nil {
		return nil, err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		User:      toUserResponse(user),
		Token:     token,
		IsNewUser: isNew,
		Message:   "login successful",
	}, nil
}

func (s *AuthService) Me(principal model.Principal) (*dto.UserResponse, error) {
	return s.GetUser(principal.ID)
}

func (s *AuthService) GetUser(id uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *AuthService) UpdateProfile(principal model.Principal, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(principal.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *AuthService) ChangePassword(principal model.Principal, req dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(principal.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return err
	}
	if user.Password == "" {
		return apperr.RuleViolation("account has no password set")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return apperr.Unauthorized("old password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.userRepo.Update(user)
}

// GenerateToken signs an HS256 token carrying the identity the auth
// middleware reconstructs the principal from.
func (s *AuthService) GenerateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"role":   string(user.Role),
		"iat":    now.Unix(),
		"exp":    now.Add(time.Duration(s.cfg.Auth.TokenTTLHours) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
