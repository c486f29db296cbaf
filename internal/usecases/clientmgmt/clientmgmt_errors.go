package clientmgmt

import (
	"errors"
)

var (
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
	ErrClientNotFound      = errors.New("cliente não encontrado")
	ErrNoAccountsFound     = errors.New("nenhuma conta de anúncio encontrada para o token")
	ErrGenerateID          = errors.New("erro ao gerar identificador único")
)
