package simulador

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"

	"github.com/khevencolino/Tradutor/internal/debug"
)

var ErrLimiteCiclos = errors.New("limite de ciclos atingido")

// Início da pilha após o bootstrap
const BasePilha = 256

// CPU simula o computador Hack: registradores A, D e PC, ROM e RAM
type CPU struct {
	A, D, PC uint16
	RAM      [1 << 16]uint16
	ROM      []uint16
	Ciclos   int
}

// NovaCPU carrega o programa na ROM com a RAM zerada
func NovaCPU(programa *Programa) *CPU {
	return &CPU{ROM: programa.Instrucoes}
}

// Passo executa uma instrução
func (c *CPU) Passo() {
	instrucao := c.ROM[c.PC]
	c.Ciclos++

	// Instrução A: carrega a constante
	if instrucao&0x8000 == 0 {
		c.A = instrucao
		c.PC++
		return
	}

	endereco := c.A
	y := c.A
	if instrucao&bitM != 0 {
		y = c.RAM[endereco]
	}
	saida := ula(instrucao>>6, c.D, y)

	dest := (instrucao >> 3) & 0b111
	if dest&destM != 0 {
		c.RAM[endereco] = saida
	}
	if dest&destA != 0 {
		c.A = saida
	}
	if dest&destD != 0 {
		c.D = saida
	}

	if saltar(instrucao&0b111, int16(saida)) {
		c.PC = endereco
	} else {
		c.PC++
	}
}

// ula implementa os seis bits de controle zx nx zy ny f no
func ula(controle uint16, x, y uint16) uint16 {
	if controle&0b100000 != 0 {
		x = 0
	}
	if controle&0b010000 != 0 {
		x = ^x
	}
	if controle&0b001000 != 0 {
		y = 0
	}
	if controle&0b000100 != 0 {
		y = ^y
	}
	var saida uint16
	if controle&0b000010 != 0 {
		saida = x + y
	} else {
		saida = x & y
	}
	if controle&0b000001 != 0 {
		saida = ^saida
	}
	return saida
}

func saltar(bits uint16, valor int16) bool {
	switch {
	case valor < 0:
		return bits&0b100 != 0
	case valor == 0:
		return bits&0b010 != 0
	default:
		return bits&0b001 != 0
	}
}

// Parada informa se o programa terminou: PC fora da ROM ou laço @L / 0;JMP
func (c *CPU) Parada() bool {
	if int(c.PC) >= len(c.ROM) {
		return true
	}
	if c.PC == 0 {
		return false
	}
	instrucao := c.ROM[c.PC]
	anterior := c.ROM[c.PC-1]
	incondicional := instrucao&0x8000 != 0 && instrucao&saltoJMP == saltoJMP && (instrucao>>3)&0b111 == 0
	return incondicional && anterior == c.PC-1 && c.A == c.PC-1
}

// Executar roda até a parada ou até esgotar o limite de ciclos
func (c *CPU) Executar(limite int) error {
	for inicio := c.Ciclos; !c.Parada(); {
		if c.Ciclos-inicio >= limite {
			return errors.Wrapf(ErrLimiteCiclos, "%d ciclos, PC=%d", limite, c.PC)
		}
		c.Passo()
	}
	debug.Evento("simulação parada", "ciclos", c.Ciclos, "pc", c.PC, "sp", c.RAM[0])
	return nil
}

// Palavra lê a RAM como inteiro com sinal
func (c *CPU) Palavra(endereco uint16) int16 {
	return int16(c.RAM[endereco])
}

// Pilha devolve o conteúdo entre a base da pilha e SP
func (c *CPU) Pilha() []int16 {
	var pilha []int16
	for endereco := uint16(BasePilha); endereco < c.RAM[0]; endereco++ {
		pilha = append(pilha, c.Palavra(endereco))
	}
	return pilha
}

// ImprimirEstado escreve registradores e topo da pilha numa tabela
func (c *CPU) ImprimirEstado(w io.Writer) {
	estado := table.NewWriter()
	estado.SetTitle(fmt.Sprintf("Estado após %d ciclos", c.Ciclos))
	estado.AppendHeader(table.Row{"Registrador", "Valor"})
	for i, nome := range []string{"SP", "LCL", "ARG", "THIS", "THAT"} {
		estado.AppendRow(table.Row{nome, c.Palavra(uint16(i))})
	}
	estado.AppendRow(table.Row{"PC", c.PC})

	if sp := c.RAM[0]; sp > BasePilha {
		estado.AppendSeparator()
		estado.AppendRow(table.Row{"topo", c.Palavra(sp - 1)})
	}

	fmt.Fprintln(w, estado.Render())
}
