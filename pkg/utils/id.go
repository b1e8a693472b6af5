package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	characters    = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	queryIDLength = 10
)

// GenerateQueryID gera um identificador curto para rastrear uma consulta nos logs
func GenerateQueryID() string {
	id, err := gonanoid.Generate(characters, queryIDLength)
	if err != nil {
		return "unknown"
	}
	return id
}
