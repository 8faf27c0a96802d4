package hack

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var ErrRotuloDuplicado = errors.New("rótulo declarado duas vezes")

// emissor concentra a sintaxe Hack: os emissores de comandos só combinam
// as micro-operações abaixo.
type emissor struct {
	output     strings.Builder
	instrucoes int
	declarados map[string]bool
	duplicados []string
}

func novoEmissor() *emissor {
	return &emissor{declarados: make(map[string]bool)}
}

// carregarA emite @valor
func (e *emissor) carregarA(valor interface{}) {
	e.output.WriteString(fmt.Sprintf("@%v\n", valor))
	e.instrucoes++
}

// instrucao emite uma instrução C, dest=comp;jump
func (e *emissor) instrucao(texto string) {
	e.output.WriteString(texto)
	e.output.WriteString("\n")
	e.instrucoes++
}

// rotulo declara (nome). Declarações repetidas ficam registradas.
func (e *emissor) rotulo(nome string) {
	if e.declarados[nome] {
		e.duplicados = append(e.duplicados, nome)
	}
	e.declarados[nome] = true
	e.output.WriteString(fmt.Sprintf("(%s)\n", nome))
}

func (e *emissor) comentario(texto string) {
	e.output.WriteString("// ")
	e.output.WriteString(texto)
	e.output.WriteString("\n")
}

// saltar pula para destino quando D satisfaz a condição; "" é incondicional
func (e *emissor) saltar(destino, condicao string) {
	e.carregarA(destino)
	if condicao == "" {
		e.instrucao("0;JMP")
		return
	}
	e.instrucao("D;" + condicao)
}

// pushD empilha D
func (e *emissor) pushD() {
	e.carregarA("SP")
	e.instrucao("A=M")
	e.instrucao("M=D")
	e.carregarA("SP")
	e.instrucao("M=M+1")
}

// popD desempilha para D, deixando A no endereço do antigo topo
func (e *emissor) popD() {
	e.carregarA("SP")
	e.instrucao("AM=M-1")
	e.instrucao("D=M")
}

// topo aponta A para o topo atual da pilha sem mexer em SP
func (e *emissor) topo() {
	e.carregarA("SP")
	e.instrucao("A=M-1")
}

// lerRegistrador carrega em D o conteúdo de um registrador ou símbolo
func (e *emissor) lerRegistrador(nome interface{}) {
	e.carregarA(nome)
	e.instrucao("D=M")
}

// gravarRegistrador guarda D num registrador ou símbolo
func (e *emissor) gravarRegistrador(nome interface{}) {
	e.carregarA(nome)
	e.instrucao("M=D")
}

// pushRegistrador empilha o conteúdo de um registrador
func (e *emissor) pushRegistrador(nome string) {
	e.lerRegistrador(nome)
	e.pushD()
}

func (e *emissor) verificarRotulos() error {
	if len(e.duplicados) == 0 {
		return nil
	}
	return errors.Wrapf(ErrRotuloDuplicado, "%s", strings.Join(e.duplicados, ", "))
}
