package debug

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

var Enabled bool = false

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// Configurar liga ou desliga as mensagens de debug, escrevendo em w
func Configurar(ativo bool, w io.Writer) {
	Enabled = ativo
	nivel := slog.LevelWarn
	if ativo {
		nivel = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: nivel}))
}

// Evento registra um evento estruturado em nível debug
func Evento(msg string, args ...any) {
	logger.Log(context.Background(), slog.LevelDebug, msg, args...)
}

// Aviso registra um aviso, mesmo com debug desligado
func Aviso(msg string, args ...any) {
	logger.Warn(msg, args...)
}

func Printf(format string, args ...interface{}) {
	if Enabled {
		Evento(fmt.Sprintf(format, args...))
	}
}
