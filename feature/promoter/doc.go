// Package promoter handles promoter login and settlement listing.
//
// Login matches CAD_CLI rows whose CLI_DOC equals both the submitted CPF and
// password, restricted to groups 2 and 4 with status 2. Settlements come from the
// configured settlement procedure (sp_CobrancaAcerto by default).
package promoter
