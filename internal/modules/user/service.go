package user

import (
	"errors"
	"time"

	"github.com/articlekit/core/internal/models"
	"github.com/articlekit/core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

const tokenTTL = 7 * 24 * time.Hour

// Service handles author/admin accounts.
type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Login verifies credentials and returns a signed JWT.
func (s *Service) Login(username, password string) (string, *models.UserModel, error) {
	var user models.UserModel
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := jwt.Sign(user.ID, tokenTTL)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	s.db.Model(&user).Update("last_login_time", &now)
	return token, &user, nil
}

// Register creates an account with a bcrypt-hashed password.
func (s *Service) Register(username, name, password string, superuser bool) (*models.UserModel, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.UserModel{
		Username:    username,
		Name:        name,
		Password:    string(hashed),
		IsSuperuser: superuser,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID fetches a user. Returns (nil, nil) when absent.
func (s *Service) GetByID(id string) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
