package hack

import (
	"fmt"

	"github.com/khevencolino/Tradutor/internal/vm"
)

var computacaoBinaria = map[vm.Operacao]string{
	vm.OP_ADD: "M=D+M",
	vm.OP_SUB: "M=M-D",
	vm.OP_AND: "M=D&M",
	vm.OP_OR:  "M=D|M",
}

var computacaoUnaria = map[vm.Operacao]string{
	vm.OP_NEG: "M=-M",
	vm.OP_NOT: "M=!M",
}

// Salto para FALSE quando a diferença x-y contradiz a comparação
var saltoFalso = map[vm.Operacao]string{
	vm.OP_EQ: "JNE",
	vm.OP_GT: "JLE",
	vm.OP_LT: "JGE",
}

func (h *HackBackend) aritmetica(op vm.Operacao) error {
	e := h.emissor

	switch {
	case op.EhUnaria():
		e.topo()
		e.instrucao(computacaoUnaria[op])

	case op.EhComparacao():
		falso, continua := h.sessao.NovaComparacao()
		e.popD()
		e.instrucao("A=A-1")
		e.instrucao("D=M-D")
		e.saltar(falso, saltoFalso[op])
		e.topo()
		e.instrucao("M=-1")
		e.saltar(continua, "")
		e.rotulo(falso)
		e.topo()
		e.instrucao("M=0")
		e.rotulo(continua)

	default:
		comp, ok := computacaoBinaria[op]
		if !ok {
			return fmt.Errorf("operação aritmética desconhecida %q", op)
		}
		// SP desce uma vez; x fica em SP-1 e recebe o resultado
		e.popD()
		e.instrucao("A=A-1")
		e.instrucao(comp)
	}
	return nil
}
