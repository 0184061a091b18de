package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hooiv/foodorder/internal/access"
	"github.com/hooiv/foodorder/internal/database/models"
)

type UsersService struct {
	db *gorm.DB
}

func NewUsersService(db *gorm.DB) *UsersService {
	return &UsersService{db: db}
}

type CreateUserInput struct {
	Name          string         `json:"name" binding:"required"`
	Email         string         `json:"email" binding:"required,email"`
	Password      string         `json:"password" binding:"required,min=6"`
	Role          models.Role    `json:"role"`
	Country       models.Country `json:"country"`
	PaymentMethod string         `json:"paymentMethod"`
}

type UpdateUserInput struct {
	Name     *string         `json:"name,omitempty"`
	Email    *string         `json:"email,omitempty"`
	Password *string         `json:"password,omitempty"`
	Role     *models.Role    `json:"role,omitempty"`
	Country  *models.Country `json:"country,omitempty"`
}

func (s *UsersService) FindAll(ctx context.Context, caller access.Identity) ([]models.User, error) {
	if caller.Role == models.RoleMember {
		return nil, forbidden("You do not have permission to list users")
	}

	query := s.db.WithContext(ctx).Model(&models.User{})
	if countries := access.VisibleCountries(caller); countries != nil {
		query = query.Where("country IN ?", countries)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UsersService) FindOne(ctx context.Context, id string, caller access.Identity) (*models.User, error) {
	user, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !access.ResolveUser(caller, user.Country).Allowed() {
		return nil, forbidden("You do not have access to users from other countries")
	}
	return user, nil
}

// getByID loads a user without applying the access filter. Internal callers
// (authentication, order ownership resolution) need the raw row.
func (s *UsersService) getByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User with ID %s not found", id)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UsersService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User with email %s not found", email)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UsersService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unauthorized("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, unauthorized("invalid email or password")
	}
	return &user, nil
}

func (s *UsersService) Create(ctx context.Context, input CreateUserInput, caller access.Identity) (*models.User, error) {
	role := input.Role
	if role == "" {
		role = models.RoleMember
	}
	country := input.Country
	if country == "" {
		country = models.CountryIndia
	}
	if !role.Valid() {
		return nil, invalid("invalid role %q", role)
	}
	if !country.Valid() {
		return nil, invalid("invalid country %q", country)
	}

	if !access.CanManageUser(caller, role, country).Allowed() {
		return nil, forbidden("You can only create non-admin users for your country")
	}

	var existing models.User
	err := s.db.WithContext(ctx).First(&existing, "email = ?", input.Email).Error
	if err == nil {
		return nil, conflict("User with email %s already exists", input.Email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:          input.Name,
		Email:         input.Email,
		Password:      string(pwHash),
		Role:          role,
		Country:       country,
		PaymentMethod: input.PaymentMethod,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UsersService) Update(ctx context.Context, id string, input UpdateUserInput, caller access.Identity) (*models.User, error) {
	if caller.Role == models.RoleMember {
		return nil, forbidden("You do not have permission to update users")
	}

	user, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	targetRole := user.Role
	if input.Role != nil {
		targetRole = *input.Role
		if !targetRole.Valid() {
			return nil, invalid("invalid role %q", targetRole)
		}
	}
	targetCountry := user.Country
	if input.Country != nil {
		targetCountry = *input.Country
		if !targetCountry.Valid() {
			return nil, invalid("invalid country %q", targetCountry)
		}
	}
	// The caller must be allowed to manage both the user as stored and the
	// user as updated, so a manager can neither reach outside their country
	// nor move a user out of it.
	if !access.CanManageUser(caller, targetRole, user.Country).Allowed() ||
		!access.CanManageUser(caller, targetRole, targetCountry).Allowed() {
		return nil, forbidden("You can only update non-admin users from your country")
	}

	if input.Email != nil && *input.Email != user.Email {
		var existing models.User
		err := s.db.WithContext(ctx).First(&existing, "email = ?", *input.Email).Error
		if err == nil {
			return nil, conflict("User with email %s already exists", *input.Email)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		pwHash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(pwHash)
	}
	user.Role = targetRole
	user.Country = targetCountry

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UsersService) UpdatePaymentMethod(ctx context.Context, userID, paymentMethod string, caller access.Identity) (*models.User, error) {
	if caller.Role != models.RoleAdmin {
		return nil, forbidden("You do not have permission to update payment methods")
	}

	user, err := s.getByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.PaymentMethod = paymentMethod
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UsersService) Remove(ctx context.Context, id string, caller access.Identity) error {
	if caller.Role != models.RoleAdmin {
		return forbidden("You do not have permission to delete users")
	}

	user, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(user).Error
}
