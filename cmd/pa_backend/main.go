package main

import (
	"os"

	"github.com/SscSPs/plan_approval_app/internal/cli"
)

// @title Plan Approval Backend API
// @version 1.0
// @description Routes building plans through Planning, Director, Structural and Committee review.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
