package main

import (
	"github.com/josephgoksu/horizon/cmd"
	"github.com/josephgoksu/horizon/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
