package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/gksrikar/portfolio/cmd"
)

func main() {
	cmd.Execute()
}
