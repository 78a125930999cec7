package app

import (
	"os"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/logx"
)

// NewLogger returns the process JSON logger writing to stdout.
func NewLogger(level string) logx.Logger {
	return logx.NewJSON(os.Stdout, level)
}
