package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/codelever/company-registry-go/internal/config"
	"github.com/codelever/company-registry-go/internal/domain/company"
	"github.com/codelever/company-registry-go/internal/domain/user"
	appHTTP "github.com/codelever/company-registry-go/internal/handler/http"
	"github.com/codelever/company-registry-go/internal/pkg/database"
	"github.com/codelever/company-registry-go/internal/pkg/jwt"
	"github.com/codelever/company-registry-go/internal/repository/postgresql"
	"github.com/codelever/company-registry-go/internal/repository/sqlite"
	authService "github.com/codelever/company-registry-go/internal/service/auth"
	companyService "github.com/codelever/company-registry-go/internal/service/company"
	userService "github.com/codelever/company-registry-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	userRepo, companyRepo, err := openRepositories(cfg)
	if err != nil {
		log.Fatal("Error opening database: ", err)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authSvc := authService.NewAuthService(userRepo, jwtService)
	userSvc := userService.NewUserService(userRepo, companyRepo)
	companySvc := companyService.NewCompanyService(companyRepo, userRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)
	companyHandler := appHTTP.NewCompanyHandler(companySvc)

	router := appHTTP.NewRouter(jwtService, authHandler, userHandler, companyHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}

func openRepositories(cfg *config.Config) (user.UserRepository, company.CompanyRepository, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		store, err := sqlite.NewStore(cfg.Database.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := store.ApplyMigrations(); err != nil {
			return nil, nil, err
		}
		return sqlite.NewUserRepository(store), sqlite.NewCompanyRepository(store), nil

	default:
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			return nil, nil, err
		}
		if err := postgresql.ApplyMigrations(db); err != nil {
			return nil, nil, err
		}
		return postgresql.NewUserRepository(db), postgresql.NewCompanyRepository(db), nil
	}
}
