package main

import (
	"os"

	"github.com/jainabhishek-dev/ai-question-generator-sub000/cmd/qgen/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
