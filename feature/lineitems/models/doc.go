// Package models defines the GORM mapping of the CAD_IPE line item table.
package models
