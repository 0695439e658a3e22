package service

import (
	"github.com/freshtrack/freshtrack/internal/config"
	"github.com/freshtrack/freshtrack/internal/repository"
)

type Services struct {
	Auth    *AuthService
	Product *ProductService
}

func NewServices(repos *repository.Repositories, mailer Mailer, cfg *config.Config) *Services {
	return &Services{
		Auth:    NewAuthService(repos.User, repos.Product, mailer, cfg),
		Product: NewProductService(repos.Product),
	}
}
