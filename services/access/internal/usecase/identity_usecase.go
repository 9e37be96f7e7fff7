package usecase

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"

	"peergram/pkg/jwt"
	"peergram/pkg/logger"
	"peergram/pkg/s3"
	"peergram/services/access/internal/entity"
	"peergram/services/access/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

// DefaultRoleName is the role every fresh registration receives. The RBAC
// store never auto-creates roles; the registration workflow does, because
// first boot has no reference data yet.
const DefaultRoleName = "USER"

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.]*$`)

	passwordUpper  = regexp.MustCompile(`[A-Z]`)
	passwordLower  = regexp.MustCompile(`[a-z]`)
	passwordDigit  = regexp.MustCompile(`\d`)
	passwordSymbol = regexp.MustCompile(`[^\w\s]`)
)

// ProfileUpdate carries the editable profile fields. Nil pointers mean
// "leave unchanged".
type ProfileUpdate struct {
	Bio            *string
	Website        *string
	IsPrivate      *bool
	IsProfessional *bool
	Links          []entity.Link
}

type IdentityUseCase interface {
	Register(email, username, password, displayName string) (*entity.Identity, string, error)
	Login(identifier, password string) (*entity.Identity, string, error)
	Get(identityID string) (*entity.Identity, error)
	UpdateProfile(ownerID string, update ProfileUpdate) (*entity.Profile, error)
	UploadAvatar(ownerID string, fileReader io.Reader, fileKey, contentType string) (*entity.Profile, error)
}

type identityUseCase struct {
	identityRepo persistent.IdentityRepository
	profileRepo  persistent.ProfileRepository
	rbacRepo     persistent.RBACRepository
	jwtService   *jwt.Service
	s3Client     *s3.Client
	logger       *logger.Logger
}

func NewIdentityUseCase(
	identityRepo persistent.IdentityRepository,
	profileRepo persistent.ProfileRepository,
	rbacRepo persistent.RBACRepository,
	jwtService *jwt.Service,
	s3Client *s3.Client,
	log *logger.Logger,
) IdentityUseCase {
	return &identityUseCase{
		identityRepo: identityRepo,
		profileRepo:  profileRepo,
		rbacRepo:     rbacRepo,
		jwtService:   jwtService,
		s3Client:     s3Client,
		logger:       log,
	}
}

func validateUsername(username string) error {
	if len(username) < 4 {
		return fmt.Errorf("%w: username must be at least 4 characters", entity.ErrValidation)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: username must start with a letter and contain only letters, numbers, _ or .", entity.ErrValidation)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", entity.ErrValidation)
	}
	if !passwordUpper.MatchString(password) {
		return fmt.Errorf("%w: password must contain an uppercase letter", entity.ErrValidation)
	}
	if !passwordLower.MatchString(password) {
		return fmt.Errorf("%w: password must contain a lowercase letter", entity.ErrValidation)
	}
	if !passwordDigit.MatchString(password) {
		return fmt.Errorf("%w: password must contain a number", entity.ErrValidation)
	}
	if !passwordSymbol.MatchString(password) {
		return fmt.Errorf("%w: password must contain a symbol", entity.ErrValidation)
	}
	return nil
}

func validateLinks(links []entity.Link) error {
	for _, link := range links {
		if link.Label == "" {
			return fmt.Errorf("%w: link label must not be empty", entity.ErrValidation)
		}
		parsed, err := url.Parse(link.URL)
		if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return fmt.Errorf("%w: link %q has an invalid URL", entity.ErrValidation, link.Label)
		}
	}
	return nil
}

func (uc *identityUseCase) Register(email, username, password, displayName string) (*entity.Identity, string, error) {
	if err := validateUsername(username); err != nil {
		return nil, "", err
	}
	if err := validatePassword(password); err != nil {
		return nil, "", err
	}

	if _, err := uc.identityRepo.GetByEmail(email); err == nil {
		return nil, "", entity.ErrDuplicateEmail
	}
	if _, err := uc.identityRepo.GetByUsername(username); err == nil {
		return nil, "", entity.ErrDuplicateUsername
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	identity := &entity.Identity{
		Email:       email,
		Username:    username,
		Password:    string(hashedPassword),
		DisplayName: displayName,
		IsActive:    true,
	}
	if err := uc.identityRepo.Create(identity); err != nil {
		uc.logger.Error("Failed to create identity: %v", err)
		return nil, "", err
	}

	// Exactly one profile per identity, created with it.
	profile := &entity.Profile{OwnerID: identity.ID}
	if err := uc.profileRepo.Create(profile); err != nil {
		uc.logger.Error("Failed to create profile for %s: %v", identity.ID, err)
		return nil, "", err
	}

	if err := uc.assignDefaultRole(identity.ID); err != nil {
		uc.logger.Error("Failed to assign default role to %s: %v", identity.ID, err)
		return nil, "", err
	}

	token, err := uc.jwtService.GenerateToken(identity.ID, DefaultRoleName)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	identity.Password = ""
	return identity, token, nil
}

func (uc *identityUseCase) assignDefaultRole(identityID string) error {
	err := uc.rbacRepo.AssignRole(identityID, DefaultRoleName)
	if !errors.Is(err, entity.ErrRoleNotFound) {
		return err
	}

	// First registration on an unseeded store: register the role, then
	// assign it.
	if _, err := uc.rbacRepo.CreateRole(DefaultRoleName, "default member role"); err != nil {
		return err
	}
	return uc.rbacRepo.AssignRole(identityID, DefaultRoleName)
}

func (uc *identityUseCase) Login(identifier, password string) (*entity.Identity, string, error) {
	identity, err := uc.identityRepo.GetByEmail(identifier)
	if err != nil {
		identity, err = uc.identityRepo.GetByUsername(identifier)
	}
	if err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.Password), []byte(password)); err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	if !identity.IsActive {
		return nil, "", entity.ErrInactiveIdentity
	}

	token, err := uc.jwtService.GenerateToken(identity.ID, DefaultRoleName)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	identity.Password = ""
	return identity, token, nil
}

func (uc *identityUseCase) Get(identityID string) (*entity.Identity, error) {
	identity, err := uc.identityRepo.GetByID(identityID)
	if err != nil {
		return nil, err
	}
	identity.Password = ""
	return identity, nil
}

func (uc *identityUseCase) UpdateProfile(ownerID string, update ProfileUpdate) (*entity.Profile, error) {
	if err := validateLinks(update.Links); err != nil {
		return nil, err
	}

	profile, err := uc.profileRepo.GetByOwnerID(ownerID)
	if err != nil {
		return nil, err
	}

	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	if update.Website != nil {
		profile.Website = *update.Website
	}
	if update.IsPrivate != nil {
		profile.IsPrivate = *update.IsPrivate
	}
	if update.IsProfessional != nil {
		profile.IsProfessional = *update.IsProfessional
	}
	if update.Links != nil {
		profile.Links = update.Links
	}

	if err := uc.profileRepo.Update(profile); err != nil {
		uc.logger.Error("Failed to update profile for %s: %v", ownerID, err)
		return nil, err
	}
	return profile, nil
}

func (uc *identityUseCase) UploadAvatar(ownerID string, fileReader io.Reader, fileKey, contentType string) (*entity.Profile, error) {
	avatarURL, err := uc.s3Client.UploadFile(fileKey, fileReader, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return nil, fmt.Errorf("failed to upload avatar")
	}

	profile, err := uc.profileRepo.GetByOwnerID(ownerID)
	if err != nil {
		return nil, err
	}

	profile.AvatarURL = avatarURL
	if err := uc.profileRepo.Update(profile); err != nil {
		uc.logger.Error("Failed to update profile for %s: %v", ownerID, err)
		return nil, err
	}
	return profile, nil
}
