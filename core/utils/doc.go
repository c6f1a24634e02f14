// Package utils provides conversion helpers shared by the reconciliation engine
// and the stored procedure features.
//
// Base44 clients send numbers either as JSON numbers or as numeric strings, so the
// Parse* helpers accept both and report an error instead of silently yielding zero.
package utils
