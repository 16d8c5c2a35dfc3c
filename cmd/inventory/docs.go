package main

// @title Inventory Service API
// @version 1.0
// @description Ingredients, menu items and their recipes, with structured logging, tracing and metrics.

// @host localhost:8082
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Ingredients
// @tag.description Ingredient stock endpoints

// @tag.name Items
// @tag.description Menu items and recipes

// @tag.name Swagger
// @tag.description Swagger documentation endpoints
