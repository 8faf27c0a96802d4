package assembly

import (
	"fmt"

	"github.com/khevencolino/Tradutor/internal/backends"
	"github.com/khevencolino/Tradutor/internal/backends/assembly/hack"
)

// NewAssemblyBackend escolhe o gerador pela arquitetura
func NewAssemblyBackend(arch string, opcoes hack.Opcoes) (backends.Backend, error) {
	switch arch {
	case "hack", "":
		return hack.NewHackBackend(opcoes), nil
	default:
		return nil, fmt.Errorf("arquitetura não suportada: %s", arch)
	}
}
