package catalog

import (
	"context"
	"fmt"

	"returns-bridge/core/cache"
	"returns-bridge/core/database"
	"returns-bridge/feature/catalog/models"

	"go.uber.org/zap"
)

const productsKey = "products"

// Catalog procedure filter: 1 selects the active catalog.
const activeCatalog = 1

// Service serves the product catalog and discount rules.
type Service struct {
	db                database.Getter
	productsProcedure string
	products          *cache.TTL[[]map[string]any]
	logger            *zap.Logger
}

// NewService creates a catalog service. cacheCfg controls the product cache.
func NewService(db database.Getter, productsProcedure string, cacheCfg cache.Config, logger *zap.Logger) *Service {
	return &Service{
		db:                db,
		productsProcedure: productsProcedure,
		products:          cache.NewTTL[[]map[string]any](cacheCfg.TTL()),
		logger:            logger,
	}
}

// Products returns the general product catalog, cached between calls.
func (s *Service) Products(ctx context.Context, refresh bool) ([]map[string]any, error) {
	if refresh {
		s.products.Invalidate(productsKey)
	}

	return s.products.GetOrLoad(ctx, productsKey, func(ctx context.Context) ([]map[string]any, error) {
		db, err := s.db.Get(ctx)
		if err != nil {
			return nil, err
		}

		rows, err := database.CallProcedure(ctx, db, s.productsProcedure,
			database.Param{Name: "CTL_STA", Value: activeCatalog},
		)
		if err != nil {
			return nil, err
		}
		s.logger.Info("Product catalog loaded", zap.Int("products", len(rows)))
		return rows, nil
	})
}

const discountRuleColumns = "cad_dpd.PED_COD, cad_tdp.TDP_DES, cad_dpd.GRU_COD, cad_dpd.DE, cad_dpd.ATE, " +
	"cad_dpd.PORC, cad_dpd.PORC_BONUS, cad_dpd.PORC_CARENCIA, cad_dpd.PORC_PERDA, " +
	"cad_dpd.QTDE_ACERTO_CARENCIA, cad_dpd.DESC_VENDA_TOTAL"

// DiscountRules lists the discount tiers configured for an order.
func (s *Service) DiscountRules(ctx context.Context, orderID int64) ([]models.DiscountRule, error) {
	db, err := s.db.Get(ctx)
	if err != nil {
		return nil, err
	}

	rules := make([]models.DiscountRule, 0)
	err = db.WithContext(ctx).
		Table("cad_dpd").
		Select(discountRuleColumns).
		Joins("JOIN cad_tdp ON cad_dpd.TDP_COD = cad_tdp.TDP_COD").
		Where("cad_dpd.PED_COD = ?", orderID).
		Order("cad_dpd.GRU_COD, cad_dpd.DE").
		Scan(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("discount rules lookup: %w", err)
	}
	return rules, nil
}
