package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gamewallet/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminClaims struct {
	jwt.RegisteredClaims
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type AdminService struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAdminService(db *gorm.DB, secret string, ttl time.Duration) *AdminService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &AdminService{db: db, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// UpsertAdmin creates the account or resets its password.
func (s *AdminService) UpsertAdmin(ctx context.Context, username, password, role string) (*models.AdminAccount, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) < 8 {
		return nil, ErrInvalidCredentials
	}
	if role == "" {
		role = "admin"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var admin models.AdminAccount
	err = s.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		admin = models.AdminAccount{
			Username:     username,
			PasswordHash: string(hash),
			Role:         role,
			IsActive:     true,
		}
		if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
			return nil, fmt.Errorf("create admin: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("find admin: %w", err)
	default:
		admin.PasswordHash = string(hash)
		admin.Role = role
		admin.IsActive = true
		if err := s.db.WithContext(ctx).Model(&admin).Updates(map[string]any{
			"password_hash": admin.PasswordHash,
			"role":          role,
			"is_active":     true,
		}).Error; err != nil {
			return nil, fmt.Errorf("update admin: %w", err)
		}
	}
	return &admin, nil
}

// Login verifies the password and issues a signed HS256 token.
func (s *AdminService) Login(ctx context.Context, username, password, ip string) (string, *models.AdminAccount, error) {
	if len(s.secret) == 0 {
		return "", nil, ErrJWTNotConfigured
	}

	var admin models.AdminAccount
	err := s.db.WithContext(ctx).Where("username = ? AND is_active = ?", username, true).First(&admin).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fmt.Errorf("find admin: %w", err)
	}
	if err != nil || bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		s.LogAction(ctx, models.SecurityLog{Username: username, Action: "login_failed", IP: ip})
		return "", nil, ErrInvalidCredentials
	}

	now := s.now()
	claims := AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(admin.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		AdminID:  admin.ID,
		Username: admin.Username,
		Role:     admin.Role,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	admin.LastLoginAt = &now
	if err := s.db.WithContext(ctx).Model(&admin).Update("last_login_at", now).Error; err != nil {
		logrus.WithError(err).Warn("failed to record admin login time")
	}
	s.LogAction(ctx, models.SecurityLog{AdminID: admin.ID, Username: admin.Username, Action: "login", IP: ip})
	return token, &admin, nil
}

func (s *AdminService) ParseToken(tokenStr string) (*AdminClaims, error) {
	if len(s.secret) == 0 {
		return nil, ErrJWTNotConfigured
	}

	token, err := jwt.ParseWithClaims(tokenStr, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// LogAction appends a security log entry. Failures are logged, never returned.
func (s *AdminService) LogAction(ctx context.Context, entry models.SecurityLog) {
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		logrus.WithError(err).WithField("action", entry.Action).Error("failed to write security log")
	}
}

func (s *AdminService) SecurityLogs(ctx context.Context, page, limit int) ([]models.SecurityLog, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.SecurityLog{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count security logs: %w", err)
	}
	var rows []models.SecurityLog
	if err := s.db.WithContext(ctx).Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list security logs: %w", err)
	}
	return rows, total, nil
}
