// Package lineitems exposes the CAD_IPE reconciliation endpoints.
//
// POST /reconcile-items takes {items: [...]} with camelCase fields and returns
// counts, per-item details, warnings and (tolerant policy) failures.
// POST /api/atualizar-status-itens-ipe accepts the historical {itens: [...]}
// payload with CAD_IPE column names and answers in the historical shape.
// POST /api/consultar-itens-pedido lists an order's items through a stored procedure.
//
// Store implements reconcile.Store with GORM so generated keys come back through
// the dialect (OUTPUT INSERTED on SQL Server, RETURNING on SQLite).
package lineitems
