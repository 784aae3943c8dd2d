package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/mysticpicks/picks-api/cmd/app"
)

// @title          Mystic Picks API
// @description    Stores lottery picks and their played state.
// @BasePath       /api
//
// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html
func main() {
	run := app.Start
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		run = app.Migrate
	}

	if err := run(); err != nil {
		panic(err)
	}
}
