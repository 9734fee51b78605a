// cmd/coiextract/main.go
package main

import (
	"coiextract/internal/app"
	"coiextract/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
