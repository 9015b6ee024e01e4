package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"gamewallet/helpers"
	"gamewallet/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AgentService struct {
	db *gorm.DB
}

func NewAgentService(db *gorm.DB) *AgentService {
	return &AgentService{db: db}
}

// Register creates an agent with a generated code and secret.
func (s *AgentService) Register(ctx context.Context, username, currency string, ggr float64) (*models.Agent, error) {
	if ggr <= 0 {
		ggr = 15
	}

	var taken int64
	if err := s.db.WithContext(ctx).Model(&models.Agent{}).
		Where("username = ?", username).Count(&taken).Error; err != nil {
		return nil, fmt.Errorf("check agent: %w", err)
	}
	if taken > 0 {
		return nil, ErrAgentExists
	}

	for attempt := 0; attempt < 5; attempt++ {
		agent := models.Agent{
			Username:  username,
			AgentCode: helpers.GenerateAgentCode(),
			SecretKey: uuid.New().String(),
			Currency:  strings.ToUpper(currency),
			GGR:       ggr,
			IsActive:  true,
		}

		var clash int64
		if err := s.db.WithContext(ctx).Model(&models.Agent{}).
			Where("agent_code = ?", agent.AgentCode).Count(&clash).Error; err != nil {
			return nil, fmt.Errorf("check agent code: %w", err)
		}
		if clash > 0 {
			continue
		}

		if err := s.db.WithContext(ctx).Create(&agent).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return nil, fmt.Errorf("create agent: %w", err)
		}
		return &agent, nil
	}
	return nil, errors.New("could not allocate a unique agent code")
}

func (s *AgentService) FindActive(ctx context.Context, agentCode string) (*models.Agent, error) {
	var agent models.Agent
	if err := s.db.WithContext(ctx).
		Where("agent_code = ? AND is_active = ?", agentCode, true).
		First(&agent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, fmt.Errorf("find agent: %w", err)
	}
	return &agent, nil
}

// Authenticate checks an agent's API credentials.
func (s *AgentService) Authenticate(ctx context.Context, agentCode, secretKey string) (*models.Agent, error) {
	agent, err := s.FindActive(ctx, agentCode)
	if err != nil {
		if errors.Is(err, ErrAgentNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(agent.SecretKey), []byte(secretKey)) != 1 {
		return nil, ErrInvalidCredentials
	}
	return agent, nil
}
