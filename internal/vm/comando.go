package vm

import "fmt"

// TipoComando representa o tipo de um comando da máquina virtual
type TipoComando int

const (
	C_ARITMETICO   TipoComando = iota // add, sub, neg, eq, gt, lt, and, or, not
	C_PUSH                            // push segmento indice
	C_POP                             // pop segmento indice
	C_LABEL                           // label nome
	C_GOTO                            // goto nome
	C_IF                              // if-goto nome
	C_FUNCTION                        // function nome nLocais
	C_CALL                            // call nome nArgs
	C_RETURN                          // return
	C_DESCONHECIDO                    // Linha que não casa com nenhum comando
)

// String retorna uma representação em string do tipo de comando
func (t TipoComando) String() string {
	switch t {
	case C_ARITMETICO:
		return "ARITMETICO"
	case C_PUSH:
		return "PUSH"
	case C_POP:
		return "POP"
	case C_LABEL:
		return "LABEL"
	case C_GOTO:
		return "GOTO"
	case C_IF:
		return "IF"
	case C_FUNCTION:
		return "FUNCTION"
	case C_CALL:
		return "CALL"
	case C_RETURN:
		return "RETURN"
	default:
		return "DESCONHECIDO"
	}
}

// Operacao é o mnemônico de um comando aritmético ou lógico
type Operacao string

const (
	OP_ADD Operacao = "add"
	OP_SUB Operacao = "sub"
	OP_NEG Operacao = "neg"
	OP_EQ  Operacao = "eq"
	OP_GT  Operacao = "gt"
	OP_LT  Operacao = "lt"
	OP_AND Operacao = "and"
	OP_OR  Operacao = "or"
	OP_NOT Operacao = "not"
)

var operacoes = map[string]Operacao{
	"add": OP_ADD, "sub": OP_SUB, "neg": OP_NEG,
	"eq": OP_EQ, "gt": OP_GT, "lt": OP_LT,
	"and": OP_AND, "or": OP_OR, "not": OP_NOT,
}

// EhUnaria informa se a operação altera só o topo da pilha
func (o Operacao) EhUnaria() bool { return o == OP_NEG || o == OP_NOT }

// EhComparacao informa se a operação produz um valor booleano
func (o Operacao) EhComparacao() bool { return o == OP_EQ || o == OP_GT || o == OP_LT }

// Segmento é uma das regiões de memória endereçáveis por push/pop
type Segmento string

const (
	SEG_CONSTANT Segmento = "constant"
	SEG_LOCAL    Segmento = "local"
	SEG_ARGUMENT Segmento = "argument"
	SEG_THIS     Segmento = "this"
	SEG_THAT     Segmento = "that"
	SEG_STATIC   Segmento = "static"
	SEG_POINTER  Segmento = "pointer"
	SEG_TEMP     Segmento = "temp"
)

var segmentos = map[string]Segmento{
	"constant": SEG_CONSTANT, "local": SEG_LOCAL, "argument": SEG_ARGUMENT,
	"this": SEG_THIS, "that": SEG_THAT, "static": SEG_STATIC,
	"pointer": SEG_POINTER, "temp": SEG_TEMP,
}

// Comando é uma instrução da máquina virtual já classificada
type Comando struct {
	Tipo       TipoComando
	Operacao   Operacao // Só para C_ARITMETICO
	Segmento   Segmento // Só para C_PUSH e C_POP
	Indice     int      // Só para C_PUSH e C_POP
	Nome       string   // Rótulo ou nome de função
	Quantidade int      // nLocais em C_FUNCTION, nArgs em C_CALL
	Texto      string   // Linha fonte normalizada
	Linha      int      // Linha no arquivo fonte
}

// String devolve a forma canônica do comando
func (c Comando) String() string {
	switch c.Tipo {
	case C_ARITMETICO:
		return string(c.Operacao)
	case C_PUSH:
		return fmt.Sprintf("push %s %d", c.Segmento, c.Indice)
	case C_POP:
		return fmt.Sprintf("pop %s %d", c.Segmento, c.Indice)
	case C_LABEL:
		return "label " + c.Nome
	case C_GOTO:
		return "goto " + c.Nome
	case C_IF:
		return "if-goto " + c.Nome
	case C_FUNCTION:
		return fmt.Sprintf("function %s %d", c.Nome, c.Quantidade)
	case C_CALL:
		return fmt.Sprintf("call %s %d", c.Nome, c.Quantidade)
	case C_RETURN:
		return "return"
	default:
		return c.Texto
	}
}

// Unidade é uma unidade de tradução: os comandos de um arquivo .vm
type Unidade struct {
	Nome     string // Nome do arquivo sem extensão, usado nas variáveis static
	Caminho  string
	Comandos []Comando
}

// Programa é a sequência ordenada de unidades traduzidas juntas
type Programa struct {
	Unidades []Unidade
}

// DefineFuncao informa se alguma unidade declara a função
func (p *Programa) DefineFuncao(nome string) bool {
	for _, u := range p.Unidades {
		for _, c := range u.Comandos {
			if c.Tipo == C_FUNCTION && c.Nome == nome {
				return true
			}
		}
	}
	return false
}

// TotalComandos conta os comandos de todas as unidades
func (p *Programa) TotalComandos() int {
	total := 0
	for _, u := range p.Unidades {
		total += len(u.Comandos)
	}
	return total
}
