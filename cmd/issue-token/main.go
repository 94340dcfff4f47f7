package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"tortilleria-ventas/internal/config"
	"tortilleria-ventas/internal/repository"
	"tortilleria-ventas/pkg/database"
	"tortilleria-ventas/pkg/jwt"

	"github.com/joho/godotenv"
)

func main() {
	employeeID := flag.Uint("empleado", 0, "id_empleado the token is issued to")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}
	cfg := config.Load()

	if !cfg.AuthEnabled() {
		log.Fatal("❌ JWT_SECRET is not set, write routes are open and no token is needed")
	}
	if *employeeID == 0 {
		log.Fatal("❌ -empleado is required")
	}

	// 2. Setup Database
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer database.Close(db)

	// 3. Find Employee
	employee, err := repository.NewCatalogRepo(db).FindEmployeeByID(context.Background(), *employeeID)
	if err != nil {
		log.Fatalf("❌ Employee %d not found in database: %v", *employeeID, err)
	}

	// 4. Sign
	token, err := jwt.GenerateToken([]byte(cfg.JWTSecret), employee.ID, employee.FullName(), employee.Role, employee.BranchID, *ttl)
	if err != nil {
		log.Fatalf("❌ Failed to sign token: %v", err)
	}

	log.Printf("✅ Token for %s (%s), valid for %s", employee.FullName(), employee.Role, *ttl)
	fmt.Println(token)
}
