package hack_test

import (
	"fmt"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/khevencolino/Tradutor/internal/backends/assembly/hack"
	"github.com/khevencolino/Tradutor/internal/vm"
)

var _ = Describe("HackBackend", func() {

	Context("memory segments", func() {
		DescribeTable("push constant K / pop temp 0 stores K at the temp base",
			func(k int) {
				cpu, _ := rodar(unidade("Main",
					fmt.Sprintf("push constant %d", k),
					"pop temp 0",
				))
				Expect(cpu.Palavra(5)).To(Equal(int16(k)))
				Expect(cpu.RAM[0]).To(Equal(uint16(256)))
			},
			Entry("zero", 0),
			Entry("one", 1),
			Entry("byte", 255),
			Entry("mid range", 12345),
			Entry("largest A-instruction", vm.MaiorConstante),
		)

		It("lays temp out from address 5", func() {
			cpu, _ := rodar(unidade("Main",
				"push constant 11", "pop temp 0",
				"push constant 22", "pop temp 7",
				"push temp 7", "push temp 0", "sub",
			))
			Expect(cpu.Palavra(5)).To(Equal(int16(11)))
			Expect(cpu.Palavra(12)).To(Equal(int16(22)))
			Expect(topo(cpu)).To(Equal(int16(11)))
		})

		It("maps pointer 0/1 onto THIS/THAT and indexes this/that from them", func() {
			cpu, _ := rodar(unidade("Main",
				"push constant 3000", "pop pointer 0",
				"push constant 4000", "pop pointer 1",
				"push constant 42", "pop this 2",
				"push constant 43", "pop that 6",
				"push this 2", "push that 6", "add",
				"push pointer 0", "push pointer 1",
			))
			Expect(cpu.RAM[3]).To(Equal(uint16(3000)))
			Expect(cpu.RAM[4]).To(Equal(uint16(4000)))
			Expect(cpu.Palavra(3002)).To(Equal(int16(42)))
			Expect(cpu.Palavra(4006)).To(Equal(int16(43)))
			Expect(cpu.Pilha()).To(Equal([]int16{85, 3000, 4000}))
		})

		It("gives each unit its own static namespace", func() {
			cpu, programa := rodar(
				unidade("Alfa", "push constant 1", "pop static 0"),
				unidade("Beta", "push constant 2", "pop static 0", "push static 0"),
			)

			alfa, ok := programa.Endereco("Alfa.0")
			Expect(ok).To(BeTrue())
			beta, ok := programa.Endereco("Beta.0")
			Expect(ok).To(BeTrue())
			Expect(alfa).NotTo(Equal(beta))

			Expect(cpu.Palavra(alfa)).To(Equal(int16(1)))
			Expect(cpu.Palavra(beta)).To(Equal(int16(2)))
			Expect(cpu.Pilha()).To(Equal([]int16{2}))
		})

		It("computes the pop target before touching SP", func() {
			cpu, _ := rodar(
				unidade("Sys",
					"function Sys.init 0",
					"push constant 5",
					"push constant 6",
					"call Main.troca 2",
					"pop temp 1",
					"label FIM",
					"goto FIM",
				),
				unidade("Main",
					"function Main.troca 2",
					"push argument 0", "pop local 1",
					"push argument 1", "pop local 0",
					"push local 0", "push local 1", "sub",
					"return",
				),
			)
			Expect(cpu.Palavra(6)).To(Equal(int16(1)))
		})
	})

	Context("arithmetic", func() {
		DescribeTable("binary operations wrap at 16 bits",
			func(a, b int, operacao string, esperado int16) {
				var linhas []string
				linhas = append(linhas, pushInteiro(a)...)
				linhas = append(linhas, pushInteiro(b)...)
				linhas = append(linhas, operacao)

				cpu, _ := rodar(unidade("Main", linhas...))
				Expect(cpu.RAM[0]).To(Equal(uint16(257)))
				Expect(topo(cpu)).To(Equal(esperado))
			},
			Entry("7 + 8", 7, 8, "add", int16(15)),
			Entry("overflow", 32767, 1, "add", int16(-32768)),
			Entry("negative sum", -20, 5, "add", int16(-15)),
			Entry("8 - 7", 8, 7, "sub", int16(1)),
			Entry("below zero", 0, 5, "sub", int16(-5)),
			Entry("underflow", -32767, 2, "sub", int16(32767)),
			Entry("and", 0b1100, 0b1010, "and", int16(0b1000)),
			Entry("or", 0b1100, 0b1010, "or", int16(0b1110)),
		)

		DescribeTable("unary operations replace the top in place",
			func(a int, operacao string, esperado int16) {
				linhas := append(pushInteiro(a), operacao)
				cpu, _ := rodar(unidade("Main", linhas...))
				Expect(cpu.RAM[0]).To(Equal(uint16(257)))
				Expect(topo(cpu)).To(Equal(esperado))
			},
			Entry("neg", 9, "neg", int16(-9)),
			Entry("neg negative", -9, "neg", int16(9)),
			Entry("not zero", 0, "not", int16(-1)),
			Entry("not true", -1, "not", int16(0)),
		)

		DescribeTable("comparisons push canonical truth values",
			func(a, b int, operacao string, esperado int16) {
				var linhas []string
				linhas = append(linhas, pushInteiro(a)...)
				linhas = append(linhas, pushInteiro(b)...)
				linhas = append(linhas, operacao)

				cpu, _ := rodar(unidade("Main", linhas...))
				Expect(cpu.RAM[0]).To(Equal(uint16(257)))
				Expect(topo(cpu)).To(Equal(esperado))
			},
			Entry("eq 0 0", 0, 0, "eq", int16(-1)),
			Entry("gt 0 0", 0, 0, "gt", int16(0)),
			Entry("lt 0 0", 0, 0, "lt", int16(0)),
			Entry("eq -5 3", -5, 3, "eq", int16(0)),
			Entry("lt -5 3", -5, 3, "lt", int16(-1)),
			Entry("gt -5 3", -5, 3, "gt", int16(0)),
			Entry("gt 3 -5", 3, -5, "gt", int16(-1)),
			Entry("lt 3 -5", 3, -5, "lt", int16(0)),
			Entry("eq 17 17", 17, 17, "eq", int16(-1)),
		)

		It("allocates one fresh FALSE/CONTINUE pair per comparison", func() {
			resultado := traduzir(hack.Opcoes{},
				unidade("Alfa", "push constant 1", "push constant 2", "eq", "push constant 3", "lt"),
				unidade("Beta", "push constant 1", "push constant 2", "eq", "gt"),
			)
			Expect(rotulosDeclarados(resultado.Codigo)).To(Equal([]string{
				"FALSE0", "CONTINUE0", "FALSE1", "CONTINUE1",
				"FALSE2", "CONTINUE2", "FALSE3", "CONTINUE3",
			}))
		})
	})

	Context("program flow", func() {
		It("jumps on any non-zero value for if-goto", func() {
			cpu, _ := rodar(unidade("Main",
				"push constant 5",
				"if-goto PULOU",
				"push constant 111",
				"pop temp 0",
				"label PULOU",
				"push constant 0",
				"if-goto NUNCA",
				"push constant 222",
				"pop temp 1",
				"label NUNCA",
			))
			Expect(cpu.Palavra(5)).To(Equal(int16(0)))
			Expect(cpu.Palavra(6)).To(Equal(int16(222)))
			Expect(cpu.RAM[0]).To(Equal(uint16(256)))
		})

		It("runs loops built from label/goto/if-goto", func() {
			// soma 1..10 em temp 0
			cpu, _ := rodar(unidade("Main",
				"push constant 10", "pop temp 1",
				"label LOOP",
				"push temp 1", "push temp 0", "add", "pop temp 0",
				"push temp 1", "push constant 1", "sub", "pop temp 1",
				"push temp 1",
				"if-goto LOOP",
			))
			Expect(cpu.Palavra(5)).To(Equal(int16(55)))
		})

		It("keeps label text as given", func() {
			resultado := traduzir(hack.Opcoes{}, unidade("Main",
				"label Main.main$LOOP", "goto Main.main$LOOP",
			))
			Expect(resultado.Codigo).To(ContainSubstring("(Main.main$LOOP)\n// goto Main.main$LOOP\n@Main.main$LOOP\n0;JMP\n"))
		})
	})

	Context("function call protocol", func() {
		It("returns to the caller height plus one for 50 nested calls", func() {
			linhas := []string{"call F0 0", "label FIM", "goto FIM"}
			for i := 0; i < 50; i++ {
				linhas = append(linhas, fmt.Sprintf("function F%d 0", i))
				if i < 49 {
					linhas = append(linhas, fmt.Sprintf("call F%d 0", i+1))
				} else {
					linhas = append(linhas, "push constant 7")
				}
				linhas = append(linhas, "return")
			}

			cpu, _ := rodar(unidade("Main", linhas...))
			Expect(cpu.RAM[0]).To(Equal(uint16(257)))
			Expect(topo(cpu)).To(Equal(int16(7)))
			Expect(cpu.RAM[1:5]).To(Equal([]uint16{0, 0, 0, 0}))
		})

		It("zero-initialises exactly nLocals slots", func() {
			resultado := traduzir(hack.Opcoes{},
				unidade("Sys",
					"function Sys.init 0",
					"push constant 10",
					"push constant 20",
					"call Main.soma 2",
					"pop temp 0",
					"call Main.vazia 0",
					"pop temp 1",
					"label FIM",
					"goto FIM",
				),
				unidade("Main",
					"function Main.soma 3",
					"push argument 0", "push argument 1", "add",
					"push local 0", "add",
					"push local 1", "add",
					"push local 2", "add",
					"return",
					"function Main.vazia 0",
					"push constant 9",
					"return",
				),
			)
			cpu, _ := carregar(resultado.Codigo)
			for endereco := 256; endereco < 400; endereco++ {
				cpu.RAM[endereco] = 99
			}
			Expect(cpu.Executar(limiteCiclos)).To(Succeed())

			Expect(cpu.Palavra(5)).To(Equal(int16(30)))
			Expect(cpu.Palavra(6)).To(Equal(int16(9)))
			// Sys.init começa em 261 depois do quadro do bootstrap
			Expect(cpu.RAM[0]).To(Equal(uint16(261)))
		})

		It("computes recursive fibonacci", func() {
			cpu, _ := rodar(
				unidade("Sys",
					"function Sys.init 0",
					"push constant 10",
					"call Main.fib 1",
					"pop temp 0",
					"label FIM",
					"goto FIM",
				),
				unidade("Main",
					"function Main.fib 0",
					"push argument 0",
					"push constant 2",
					"lt",
					"if-goto BASE",
					"push argument 0",
					"push constant 1",
					"sub",
					"call Main.fib 1",
					"push argument 0",
					"push constant 2",
					"sub",
					"call Main.fib 1",
					"add",
					"return",
					"label BASE",
					"push argument 0",
					"return",
				),
			)
			Expect(cpu.Palavra(5)).To(Equal(int16(55)))
		})

		It("restores THIS and THAT of the caller", func() {
			cpu, _ := rodar(
				unidade("Sys",
					"function Sys.init 0",
					"push constant 3000", "pop pointer 0",
					"push constant 4000", "pop pointer 1",
					"call Main.muda 0",
					"pop temp 0",
					"push pointer 0", "pop temp 1",
					"push pointer 1", "pop temp 2",
					"label FIM",
					"goto FIM",
				),
				unidade("Main",
					"function Main.muda 0",
					"push constant 5000", "pop pointer 0",
					"push constant 6000", "pop pointer 1",
					"push constant 1",
					"return",
				),
			)
			Expect(cpu.Palavra(6)).To(Equal(int16(3000)))
			Expect(cpu.Palavra(7)).To(Equal(int16(4000)))
		})

		It("names return labels after the calling function with a global counter", func() {
			resultado := traduzir(hack.Opcoes{}, unidade("Main",
				"function Main.a 0", "call Main.b 0", "call Main.b 0", "return",
				"function Main.b 0", "call Main.c 0", "return",
				"function Main.c 0", "push constant 0", "return",
			))
			Expect(rotulosDeclarados(resultado.Codigo)).To(ContainElements(
				"Main.a$ret.0", "Main.a$ret.1", "Main.b$ret.2",
			))
		})

		It("restarts the counter per function in compatibility mode", func() {
			resultado := traduzir(hack.Opcoes{ReiniciarContadorChamadas: true}, unidade("Main",
				"function Main.a 0", "call Main.b 0", "call Main.b 0", "return",
				"function Main.b 0", "call Main.c 0", "return",
			))
			Expect(rotulosDeclarados(resultado.Codigo)).To(ContainElements(
				"Main.a$ret.0", "Main.a$ret.1", "Main.b$ret.0",
			))
		})

		It("uses the unit name for calls outside any function", func() {
			resultado := traduzir(hack.Opcoes{}, unidade("Main", "call Main.f 0", "function Main.f 0", "push constant 1", "return"))
			Expect(rotulosDeclarados(resultado.Codigo)).To(ContainElement("Main$ret.0"))
		})
	})

	Context("bootstrap", func() {
		It("only sets SP when there is no Sys.init", func() {
			resultado := traduzir(hack.Opcoes{}, unidade("Main", "push constant 1"))
			Expect(resultado.Codigo).To(HavePrefix("// bootstrap\n@256\nD=A\n@SP\nM=D\n// push constant 1\n"))
			Expect(resultado.Codigo).NotTo(ContainSubstring("Sys.init"))
		})

		It("falls through into a call to Sys.init", func() {
			cpu, programa := rodar(
				unidade("Sys",
					"function Sys.init 0",
					"push constant 1234",
					"pop static 0",
					"label FIM",
					"goto FIM",
				),
			)
			Expect(programa.Rotulos).To(HaveKey("Bootstrap$ret.0"))
			Expect(programa.Rotulos).To(HaveKey("Bootstrap$halt"))

			sys, _ := programa.Endereco("Sys.0")
			Expect(cpu.Palavra(sys)).To(Equal(int16(1234)))
			Expect(cpu.RAM[2]).To(Equal(uint16(256)))
			Expect(cpu.RAM[1]).To(Equal(uint16(261)))
		})

		It("reaches the entry function even when its unit is not first", func() {
			cpu, programa := rodar(
				unidade("Alfa",
					"function Alfa.set 0",
					"push constant 77",
					"pop static 0",
					"push constant 0",
					"return",
				),
				unidade("Sys",
					"function Sys.init 0",
					"call Alfa.set 0",
					"pop temp 0",
					"label FIM",
					"goto FIM",
				),
			)
			alfa, _ := programa.Endereco("Alfa.0")
			Expect(cpu.Palavra(alfa)).To(Equal(int16(77)))
		})
	})

	Context("output", func() {
		It("echoes each source line before its code", func() {
			resultado := traduzir(hack.Opcoes{}, unidade("Main", "push constant 7", "push   constant 8", "add"))
			Expect(resultado.Codigo).To(ContainSubstring("// push constant 7\n@7\nD=A\n"))
			Expect(resultado.Codigo).To(ContainSubstring("// push   constant 8\n@8\n"))
			Expect(resultado.Codigo).To(HaveSuffix("M=D+M\n"))
		})

		It("summarises each unit", func() {
			resultado := traduzir(hack.Opcoes{},
				unidade("Alfa", "push constant 1", "push constant 2", "add"),
				unidade("Beta", "push constant 1", "pop temp 0"),
			)
			Expect(resultado.Unidades).To(HaveLen(2))
			Expect(resultado.Unidades[0].Nome).To(Equal("Alfa"))
			Expect(resultado.Unidades[0].Comandos).To(Equal(3))
			// push constant: 7 instruções, add: 5, pop temp: 5
			Expect(resultado.Unidades[0].Instrucoes).To(Equal(19))
			Expect(resultado.Unidades[1].Instrucoes).To(Equal(12))
			Expect(resultado.TotalInstrucoes()).To(Equal(31))
		})

		It("never declares the same label twice across a whole program", func() {
			var unidades []vm.Unidade
			for u := 0; u < 3; u++ {
				nome := fmt.Sprintf("U%d", u)
				unidades = append(unidades, unidade(nome,
					fmt.Sprintf("function %s.f 2", nome),
					"push constant 1", "push constant 2", "eq",
					"push constant 1", "push constant 2", "gt",
					"push constant 1", "push constant 2", "lt",
					fmt.Sprintf("call %s.g 0", nome),
					fmt.Sprintf("call %s.g 0", nome),
					"return",
					fmt.Sprintf("function %s.g 0", nome),
					"push constant 0", "return",
				))
			}
			unidades = append(unidades, unidade("Sys", "function Sys.init 0", "call U0.f 0", "return"))

			resultado := traduzir(hack.Opcoes{ReiniciarContadorChamadas: true}, unidades...)
			rotulos := rotulosDeclarados(resultado.Codigo)
			vistos := map[string]bool{}
			for _, r := range rotulos {
				Expect(vistos).NotTo(HaveKey(r))
				vistos[r] = true
			}
			Expect(resultado.Rotulos).To(Equal(len(rotulos)))

			// o montador também recusa rótulos repetidos
			carregar(resultado.Codigo)
		})
	})

	Context("errors", func() {
		It("rejects unrecognised commands with their position", func() {
			_, err := hack.NewHackBackend(hack.Opcoes{}).Compile(&vm.Programa{Unidades: []vm.Unidade{
				unidade("Main", "push constant 1", "jump LOOP"),
			}})
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, hack.ErrComandoDesconhecido)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("Main:2"))
		})

		It("treats unrecognised commands as return in legacy mode", func() {
			legado := traduzir(hack.Opcoes{Legado: true}, unidade("Main", "jump LOOP"))
			retorno := traduzir(hack.Opcoes{}, unidade("Main", "return"))
			Expect(strings.Replace(legado.Codigo, "// jump LOOP", "// return", 1)).To(Equal(retorno.Codigo))
		})

		It("keeps the label and echo format in legacy mode", func() {
			fonte := []string{"function Main.a 1", "call Main.a 0", "return"}
			legado := traduzir(hack.Opcoes{Legado: true, ReiniciarContadorChamadas: true}, unidade("Main", fonte...))
			estrito := traduzir(hack.Opcoes{}, unidade("Main", fonte...))

			Expect(legado.Codigo).To(Equal(estrito.Codigo))
			Expect(rotulosDeclarados(legado.Codigo)).To(ContainElements("Main.a$ret.0", "Main.a$end_init"))
			Expect(legado.Codigo).To(ContainSubstring("// call Main.a 0\n"))

			// palavras-chave exatas: addx não vira add
			addx := traduzir(hack.Opcoes{Legado: true}, unidade("Main", "addx"))
			retorno := traduzir(hack.Opcoes{}, unidade("Main", "return"))
			Expect(strings.Replace(addx.Codigo, "// addx", "// return", 1)).To(Equal(retorno.Codigo))
		})

		It("rejects duplicate label declarations", func() {
			_, err := hack.NewHackBackend(hack.Opcoes{}).Compile(&vm.Programa{Unidades: []vm.Unidade{
				unidade("Alfa", "label LOOP"),
				unidade("Beta", "label LOOP"),
			}})
			Expect(errors.Is(err, hack.ErrRotuloDuplicado)).To(BeTrue())

			resultado := traduzir(hack.Opcoes{Legado: true}, unidade("Alfa", "label LOOP"), unidade("Beta", "label LOOP"))
			Expect(strings.Count(resultado.Codigo, "(LOOP)")).To(Equal(2))
		})

		It("starts every translation with a fresh session", func() {
			backend := hack.NewHackBackend(hack.Opcoes{})
			programa := &vm.Programa{Unidades: []vm.Unidade{unidade("Main", "push constant 1", "push constant 1", "eq")}}

			primeiro, err := backend.Compile(programa)
			Expect(err).NotTo(HaveOccurred())
			segundo, err := backend.Compile(programa)
			Expect(err).NotTo(HaveOccurred())
			Expect(segundo.Codigo).To(Equal(primeiro.Codigo))
		})
	})
})

// pushInteiro empilha qualquer inteiro de 16 bits, negativos via sub
func pushInteiro(valor int) []string {
	if valor >= 0 {
		return []string{fmt.Sprintf("push constant %d", valor)}
	}
	return []string{"push constant 0", fmt.Sprintf("push constant %d", -valor), "sub"}
}
