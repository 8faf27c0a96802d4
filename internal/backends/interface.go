package backends

import "github.com/khevencolino/Tradutor/internal/vm"

type Backend interface {
	Compile(programa *vm.Programa) (*CompilationResult, error)
	GetName() string
	GetExtension() string
}

type CompilationResult struct {
	Codigo   string          // Texto assembly completo, bootstrap primeiro
	Unidades []ResumoUnidade // Um resumo por unidade, na ordem de tradução
	Rotulos  int             // Rótulos declarados no programa inteiro
}

// ResumoUnidade conta o que cada unidade gerou
type ResumoUnidade struct {
	Nome       string
	Comandos   int
	Instrucoes int
}

// TotalInstrucoes soma as instruções de todas as unidades
func (r *CompilationResult) TotalInstrucoes() int {
	total := 0
	for _, u := range r.Unidades {
		total += u.Instrucoes
	}
	return total
}
