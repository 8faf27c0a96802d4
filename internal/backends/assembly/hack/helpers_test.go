package hack_test

import (
	"regexp"
	"strings"

	. "github.com/onsi/gomega"

	"github.com/khevencolino/Tradutor/internal/backends"
	"github.com/khevencolino/Tradutor/internal/backends/assembly/hack"
	"github.com/khevencolino/Tradutor/internal/simulador"
	"github.com/khevencolino/Tradutor/internal/vm"
)

const limiteCiclos = 2_000_000

var declaracaoRotulo = regexp.MustCompile(`(?m)^\((.+)\)$`)

func unidade(nome string, linhas ...string) vm.Unidade {
	u, err := vm.AnalisarUnidade(nome, nome+".vm", strings.NewReader(strings.Join(linhas, "\n")))
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return u
}

func traduzir(opcoes hack.Opcoes, unidades ...vm.Unidade) *backends.CompilationResult {
	resultado, err := hack.NewHackBackend(opcoes).Compile(&vm.Programa{Unidades: unidades})
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return resultado
}

// carregar monta o código e devolve a CPU pronta para rodar
func carregar(codigo string) (*simulador.CPU, *simulador.Programa) {
	programa, err := simulador.Montar(codigo)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return simulador.NovaCPU(programa), programa
}

// rodar traduz, monta e executa até a parada
func rodar(unidades ...vm.Unidade) (*simulador.CPU, *simulador.Programa) {
	resultado := traduzir(hack.Opcoes{}, unidades...)
	cpu, programa := carregar(resultado.Codigo)
	ExpectWithOffset(1, cpu.Executar(limiteCiclos)).To(Succeed())
	return cpu, programa
}

func rotulosDeclarados(codigo string) []string {
	var rotulos []string
	for _, m := range declaracaoRotulo.FindAllStringSubmatch(codigo, -1) {
		rotulos = append(rotulos, m[1])
	}
	return rotulos
}

func topo(cpu *simulador.CPU) int16 {
	return cpu.Palavra(cpu.RAM[0] - 1)
}
