package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const dashboardTokenLength = 32

func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}

// GenerateDashboardToken gera o token opaco de acesso ao dashboard de um
// cliente. O token é uma credencial permanente, então precisa ser longo o
// suficiente para não ser adivinhável
func GenerateDashboardToken() (string, error) {
	return gonanoid.Generate(characters, dashboardTokenLength)
}
