package http

import "github.com/adcraft-app/adcraft-backend/internal/auth/service"

type Handler struct {
	accounts *service.AccountService
}

func New(accounts *service.AccountService) *Handler {
	return &Handler{
		accounts: accounts,
	}
}
