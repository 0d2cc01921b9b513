package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/saamb/saamb-api/cmd/app"
)

// @securityDefinitions.apikey BearerToken
// @in header
// @name Authorization
// @description JWT issued by /groups/login
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
