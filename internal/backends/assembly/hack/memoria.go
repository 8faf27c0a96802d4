package hack

import (
	"fmt"

	"github.com/khevencolino/Tradutor/internal/vm"
)

// Registrador de rascunho para o endereço calculado no pop
const rascunhoEndereco = "R13"

// Primeiro endereço do segmento temp
const baseTemp = 5

// registradoresBase são os segmentos endereçados por base + índice
var registradoresBase = map[vm.Segmento]string{
	vm.SEG_LOCAL:    "LCL",
	vm.SEG_ARGUMENT: "ARG",
	vm.SEG_THIS:     "THIS",
	vm.SEG_THAT:     "THAT",
}

// registradorPointer resolve pointer 0/1 direto para THIS/THAT
func registradorPointer(indice int) string {
	if indice == 0 {
		return "THIS"
	}
	return "THAT"
}

// push deixa o valor do segmento no topo da pilha
func (h *HackBackend) push(segmento vm.Segmento, indice int) error {
	e := h.emissor
	switch segmento {
	case vm.SEG_CONSTANT:
		e.carregarA(indice)
		e.instrucao("D=A")
	case vm.SEG_LOCAL, vm.SEG_ARGUMENT, vm.SEG_THIS, vm.SEG_THAT:
		e.lerRegistrador(registradoresBase[segmento])
		e.carregarA(indice)
		e.instrucao("A=D+A")
		e.instrucao("D=M")
	case vm.SEG_STATIC:
		e.lerRegistrador(h.sessao.Static(indice))
	case vm.SEG_POINTER:
		e.lerRegistrador(registradorPointer(indice))
	case vm.SEG_TEMP:
		e.lerRegistrador(baseTemp + indice)
	default:
		return fmt.Errorf("push: segmento não suportado %q", segmento)
	}
	e.pushD()
	return nil
}

// pop guarda o topo da pilha no segmento. Nos segmentos com base o
// endereço é calculado antes de mexer em SP.
func (h *HackBackend) pop(segmento vm.Segmento, indice int) error {
	e := h.emissor
	switch segmento {
	case vm.SEG_LOCAL, vm.SEG_ARGUMENT, vm.SEG_THIS, vm.SEG_THAT:
		e.lerRegistrador(registradoresBase[segmento])
		e.carregarA(indice)
		e.instrucao("D=D+A")
		e.gravarRegistrador(rascunhoEndereco)
		e.popD()
		e.carregarA(rascunhoEndereco)
		e.instrucao("A=M")
		e.instrucao("M=D")
	case vm.SEG_STATIC:
		e.popD()
		e.gravarRegistrador(h.sessao.Static(indice))
	case vm.SEG_POINTER:
		e.popD()
		e.gravarRegistrador(registradorPointer(indice))
	case vm.SEG_TEMP:
		e.popD()
		e.gravarRegistrador(baseTemp + indice)
	default:
		return fmt.Errorf("pop: segmento não suportado %q", segmento)
	}
	return nil
}
