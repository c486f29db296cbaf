package syncing

import (
	"errors"
)

var (
	ErrMissingClientID = errors.New("client_id é obrigatório")
	ErrClientNotFound  = errors.New("cliente não encontrado")
)
