package service

import (
	"github.com/dukerupert/maremansa/internal/domain"
)

// Quote session errors
var (
	ErrSessionNotFound = domain.Errorf(domain.ENOTFOUND, "", "Orçamento não encontrado")
	ErrMissingSession  = domain.Errorf(domain.EINVALID, "", "Sessão de orçamento ausente")
)
