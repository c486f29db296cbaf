package domain

import (
	"errors"
)

// ErrUnknownPlatform indica uma plataforma fora do conjunto suportado
var ErrUnknownPlatform = errors.New("plataforma desconhecida")

// Platform identifica a origem externa de uma conta de anúncios
type Platform string

const (
	PlatformGoogle Platform = "google"
	PlatformMeta   Platform = "meta"
)

func (p Platform) Valid() bool {
	return p == PlatformGoogle || p == PlatformMeta
}

func (p Platform) String() string {
	return string(p)
}

// SyncStatus representa o estado de uma tentativa de sincronização.
// Transições permitidas: running -> success | running -> error
type SyncStatus string

const (
	SyncStatusRunning SyncStatus = "running"
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusError   SyncStatus = "error"
)

func (s SyncStatus) Valid() bool {
	return s == SyncStatusRunning || s == SyncStatusSuccess || s == SyncStatusError
}

// Terminal indica se o status é final para aquele registro de log
func (s SyncStatus) Terminal() bool {
	return s == SyncStatusSuccess || s == SyncStatusError
}
