package promoter

import (
	"context"
	"errors"
	"fmt"

	"returns-bridge/core/database"
	"returns-bridge/feature/promoter/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned when no active promoter matches the login.
var ErrInvalidCredentials = errors.New("invalid CPF or password, or promoter not authorized")

// Groups that may log in as promoters, and the active client status.
var promoterGroups = []int{2, 4}

const activeStatus = 2

// Settlement procedure arguments other than the client code are fixed.
const settlementType = 4

// Service authenticates promoters and lists their settlements.
type Service struct {
	db                  database.Getter
	settlementProcedure string
	logger              *zap.Logger
}

// NewService creates a promoter service.
func NewService(db database.Getter, settlementProcedure string, logger *zap.Logger) *Service {
	return &Service{db: db, settlementProcedure: settlementProcedure, logger: logger}
}

// Login looks up an active promoter whose document matches both the CPF and the password.
func (s *Service) Login(ctx context.Context, cpf, password string) (*models.Client, error) {
	db, err := s.db.Get(ctx)
	if err != nil {
		return nil, err
	}

	var client models.Client
	err = db.WithContext(ctx).
		Select("CLI_COD", "GRU_COD", "CLI_RAZ", "CLI_DOC").
		Where("CLI_DOC = ? AND CLI_DOC = ? AND GRU_COD IN ? AND CLI_STA = ?", cpf, password, promoterGroups, activeStatus).
		Take(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("promoter lookup: %w", err)
	}
	return &client, nil
}

// Settlements lists the pending settlements of a promoter.
func (s *Service) Settlements(ctx context.Context, clientID int64) ([]map[string]any, error) {
	db, err := s.db.Get(ctx)
	if err != nil {
		return nil, err
	}

	return database.CallProcedure(ctx, db, s.settlementProcedure,
		database.Param{Name: "EMP_COD", Value: 0},
		database.Param{Name: "ATRASADO", Value: false},
		database.Param{Name: "RevCod", Value: 0},
		database.Param{Name: "TIPO", Value: settlementType},
		database.Param{Name: "EndCompleto", Value: false},
		database.Param{Name: "CliCod", Value: clientID},
	)
}
