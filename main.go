package main

import (
	"eventsync-backend/core/logger"
	"eventsync-backend/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
