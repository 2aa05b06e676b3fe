package types

import "errors"

var (
	// ErrNoCredentials indica que nenhuma credencial AWS foi descoberta no
	// ambiente (variáveis, arquivos compartilhados ou IAM role).
	ErrNoCredentials = errors.New("AWS credentials not found")

	// ErrSessionNotResolved indicates a repository call before ResolveSession.
	ErrSessionNotResolved = errors.New("AWS session has not been resolved")
)
