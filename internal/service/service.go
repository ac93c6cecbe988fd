package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/complykit/compliance-service/internal/config"
	"github.com/complykit/compliance-service/internal/engine"
	"github.com/complykit/compliance-service/internal/models"
	"github.com/complykit/compliance-service/internal/repository"
)

// Service handles business logic. It is the caller of the compliance
// engine: it loads profiles and filing histories from the repository,
// supplies the current instant, and persists what the engine returns.
type Service struct {
	repo   *repository.Repository
	engine *engine.Engine
	log    *logrus.Logger
	config *config.Config
	now    func() time.Time
}

// NewService initializes a new service
func NewService(repo *repository.Repository, eng *engine.Engine, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{repo: repo, engine: eng, log: log, config: cfg, now: time.Now}
}

// Register creates a new user with hashed password
func (s *Service) Register(username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// CreateBusiness registers a client business for tracking
func (s *Service) CreateBusiness(ctx context.Context, b *models.BusinessProfile) (*models.BusinessProfile, error) {
	if _, err := userIDFromContext(ctx); err != nil {
		return nil, err
	}
	if b.Name == "" {
		return nil, fmt.Errorf("business name is required")
	}
	if err := s.repo.CreateBusiness(b); err != nil {
		return nil, err
	}
	s.log.Infof("Business created: %s (id %d)", b.Name, b.ID)
	return b, nil
}

// RecordFiling stores a filing a business made with an agency
func (s *Service) RecordFiling(ctx context.Context, f *models.FilingRecord) (*models.FilingRecord, error) {
	if _, err := userIDFromContext(ctx); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindBusinessByID(f.BusinessID); err != nil {
		return nil, err
	}
	if err := s.repo.RecordFiling(f); err != nil {
		return nil, err
	}
	s.log.Infof("Filing recorded for business %d: %s/%s", f.BusinessID, f.Agency, f.FilingType)
	return f, nil
}

// GetComplianceScore computes and persists the weighted score for a business
func (s *Service) GetComplianceScore(ctx context.Context, businessID int64) (*models.ComplianceScore, error) {
	profile, history, err := s.loadBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	score, err := s.engine.ComplianceScore(profile, history, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveComplianceScore(businessID, score); err != nil {
		return nil, err
	}
	s.log.Infof("Business %d scored %d (%s)", businessID, score.Overall, score.Level)
	return score, nil
}

// GetComplianceResults returns the raw per-agency assessments
func (s *Service) GetComplianceResults(ctx context.Context, businessID int64) ([]models.ComplianceResult, error) {
	profile, history, err := s.loadBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	results, errs := s.engine.AllResults(profile, history, s.now())
	if len(results) == 0 && len(errs) > 0 {
		return nil, fmt.Errorf("all assessments failed for business %d", businessID)
	}
	return results, nil
}

// GetUpcomingDeadlines returns the merged filing calendar for a business
func (s *Service) GetUpcomingDeadlines(ctx context.Context, businessID int64) ([]models.FilingDeadline, error) {
	profile, _, err := s.loadBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return s.engine.UpcomingDeadlines(profile, s.now()), nil
}

// GetActionPlan returns the prioritized remediation plan for a business
func (s *Service) GetActionPlan(ctx context.Context, businessID int64) (*models.ActionPlan, error) {
	profile, history, err := s.loadBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return s.engine.ActionPlan(profile, history, s.now())
}

// ValidateSetup reports registration requirements a business has not met
func (s *Service) ValidateSetup(ctx context.Context, businessID int64) (*models.SetupValidation, error) {
	profile, _, err := s.loadBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return s.engine.ValidateSetup(profile, s.now())
}

// GenerateReport composes the full compliance report for a business
func (s *Service) GenerateReport(ctx context.Context, businessID int64) (*models.ComplianceReport, error) {
	profile, history, err := s.loadBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	report, err := s.engine.GenerateReport(profile, history, s.now())
	if err != nil {
		return nil, err
	}
	s.log.Infof("Report %s generated for business %d", report.ID, businessID)
	return report, nil
}

func (s *Service) loadBusiness(ctx context.Context, businessID int64) (*models.BusinessProfile, []models.FilingRecord, error) {
	if _, err := userIDFromContext(ctx); err != nil {
		return nil, nil, err
	}
	profile, err := s.repo.FindBusinessByID(businessID)
	if err != nil {
		return nil, nil, err
	}
	history, err := s.repo.ListFilings(businessID)
	if err != nil {
		return nil, nil, err
	}
	return profile, history, nil
}

func userIDFromContext(ctx context.Context) (int64, error) {
	userIDStr, ok := ctx.Value("userID").(string)
	if !ok || userIDStr == "" {
		return 0, fmt.Errorf("user ID not found in context")
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID: %w", err)
	}
	return userID, nil
}
