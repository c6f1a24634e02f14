package lineitems

import (
	"returns-bridge/core/reconcile"

	"github.com/gofiber/fiber/v2"
)

// legacyItem is a line item as sent to /api/atualizar-status-itens-ipe, using CAD_IPE column names.
type legacyItem struct {
	ItemID        reconcile.Value `json:"IPE_COD"`
	OutOfOrder    reconcile.Value `json:"FORA_DO_PEDIDO"`
	Status        reconcile.Value `json:"IPE_STA"`
	OrderRef      reconcile.Value `json:"REV_COD"`
	OrderID       reconcile.Value `json:"PED_COD"`
	ReferenceCode reconcile.Value `json:"CUP_REF"`
	Description   reconcile.Value `json:"PRO_DES"`
	UnitValue     reconcile.Value `json:"IPE_VTL"`
	UnitCode      reconcile.Value `json:"UNI_COD"`
	ProductCode   reconcile.Value `json:"CUP_COD"`
	ReturnUser    reconcile.Value `json:"USU_DEV"`
	ReturnedAt    reconcile.Value `json:"IPE_DDV"`
	Rescheduled   reconcile.Value `json:"REMARCADO_PROX_MES"`
	ClientRef     reconcile.Value `json:"CUP_CDI"`
}

type legacyRequest struct {
	Items []legacyItem `json:"itens"`
}

func (i legacyItem) changeRequest() reconcile.ChangeRequest {
	return reconcile.ChangeRequest{
		ItemID:        i.ItemID,
		OutOfOrder:    i.OutOfOrder,
		Status:        i.Status,
		OrderRef:      i.OrderRef,
		OrderID:       i.OrderID,
		ReferenceCode: i.ReferenceCode,
		Description:   i.Description,
		UnitValue:     i.UnitValue,
		UnitCode:      i.UnitCode,
		ProductCode:   i.ProductCode,
		ReturnUser:    i.ReturnUser,
		ReturnedAt:    i.ReturnedAt,
		Rescheduled:   i.Rescheduled,
		ClientRef:     i.ClientRef,
	}
}

func (r legacyRequest) changeRequests() []reconcile.ChangeRequest {
	reqs := make([]reconcile.ChangeRequest, len(r.Items))
	for i, item := range r.Items {
		reqs[i] = item.changeRequest()
	}
	return reqs
}

// legacyResponse renders a result in the shape existing Base44 clients parse.
func legacyResponse(res *reconcile.Result) fiber.Map {
	inserted := make([]fiber.Map, 0, len(res.Details.Inserted))
	for _, it := range res.Details.Inserted {
		inserted = append(inserted, fiber.Map{"indice": it.Index, "IPE_COD": it.ItemID, "CUP_CDI": it.ClientRef})
	}
	updated := make([]fiber.Map, 0, len(res.Details.Updated))
	for _, it := range res.Details.Updated {
		updated = append(updated, fiber.Map{"IPE_COD": it.ItemID})
	}
	deleted := make([]fiber.Map, 0, len(res.Details.Deleted))
	for _, it := range res.Details.Deleted {
		if it.ItemID != 0 {
			deleted = append(deleted, fiber.Map{"IPE_COD": it.ItemID})
			continue
		}
		deleted = append(deleted, fiber.Map{"REV_COD": it.OrderRef, "PED_COD": it.OrderID, "CUP_REF": it.ReferenceCode})
	}

	body := fiber.Map{
		"success":       true,
		"message":       "Sincronização concluída.",
		"sincronizados": res.Updated,
		"inseridos":     res.Inserted,
		"deletados":     res.Deleted,
		"detalhes": fiber.Map{
			"itensInseridos":   inserted,
			"itensAtualizados": updated,
			"itensDeletados":   deleted,
		},
	}
	if len(res.Warnings) > 0 {
		body["warnings"] = res.Warnings
	}
	if len(res.Failures) > 0 {
		body["failures"] = res.Failures
	}
	return body
}
