// Package main Split de Pagamentos API
//
//	@title						Split de Pagamentos API
//	@version					1.0
//	@description				Marketplace backend: Mercado Pago seller onboarding, split payments and webhook reconciliation.
//
//	@host						localhost:3000
//	@BasePath					/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Admin session token. Format: "Bearer {token}"
//
//	@tag.name					onboarding
//	@tag.description			Seller OAuth onboarding
//
//	@tag.name					payments
//	@tag.description			Split payments and gateway notifications
//
//	@tag.name					sellers
//	@tag.description			Connected sellers
//
//	@tag.name					reports
//	@tag.description			Marketplace statistics
//
//	@tag.name					admin
//	@tag.description			Dashboard accounts
package main
