package vm

import (
	"fmt"
	"io"

	"github.com/m1gwings/treedrawer/tree"
)

// VisualizadorArvore desenha a estrutura do programa: unidades, funções e comandos
type VisualizadorArvore struct {
	// Comandos controla se os comandos aparecem como folhas
	Comandos bool
}

// NovoVisualizador cria um novo visualizador
func NovoVisualizador(comandos bool) *VisualizadorArvore {
	return &VisualizadorArvore{Comandos: comandos}
}

// CriarArvore converte o programa para o formato do treedrawer
func (v *VisualizadorArvore) CriarArvore(programa *Programa) *tree.Tree {
	arvore := tree.NewTree(tree.NodeString(fmt.Sprintf("programa (%d)", len(programa.Unidades))))

	for _, unidade := range programa.Unidades {
		noUnidade := arvore.AddChild(tree.NodeString(unidade.Nome))

		// Comandos antes da primeira função ficam pendurados na unidade
		atual := noUnidade
		for _, cmd := range unidade.Comandos {
			if cmd.Tipo == C_FUNCTION {
				atual = noUnidade.AddChild(tree.NodeString(fmt.Sprintf("%s/%d", cmd.Nome, cmd.Quantidade)))
				continue
			}
			if v.Comandos {
				atual.AddChild(tree.NodeString(cmd.String()))
			}
		}
	}

	return arvore
}

// ImprimirArvore escreve a árvore em w
func (v *VisualizadorArvore) ImprimirArvore(w io.Writer, programa *Programa) {
	fmt.Fprintln(w, "=== Estrutura do Programa ===")
	fmt.Fprintln(w, v.CriarArvore(programa))
	fmt.Fprintln(w)
}
