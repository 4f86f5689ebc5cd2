package main

// @title POS Back Office API
// @version 1.0
// @description Back office for a point of sale: clients, products, inventory, orders, invoices and day sales reports.

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Clients
// @tag.description Supplier and brand management

// @tag.name Products
// @tag.description Product catalog

// @tag.name Inventory
// @tag.description Stock levels and adjustments

// @tag.name Orders
// @tag.description Order lifecycle

// @tag.name Invoices
// @tag.description Invoice generation and documents

// @tag.name Reports
// @tag.description Sales reporting (supervisor only)

// @tag.name Health
// @tag.description Health check endpoints
