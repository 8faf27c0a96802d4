package compiler

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"

	"github.com/khevencolino/Tradutor/internal/backends"
	"github.com/khevencolino/Tradutor/internal/backends/assembly"
	"github.com/khevencolino/Tradutor/internal/backends/assembly/hack"
	"github.com/khevencolino/Tradutor/internal/debug"
	"github.com/khevencolino/Tradutor/internal/simulador"
	"github.com/khevencolino/Tradutor/internal/vm"
)

// Opcoes configura uma tradução completa
type Opcoes struct {
	Arch                      string // Arquitetura alvo do backend
	Legado                    bool   // Comportamento tolerante do tradutor antigo
	ReiniciarContadorChamadas bool   // Zera o contador de retornos a cada function
	Arvore                    bool   // Imprime a estrutura do programa
	Resumo                    bool   // Imprime a tabela de unidades
	CiclosSimulacao           int    // Executa a saída no simulador, 0 desliga
}

// Compiler representa o tradutor principal
type Compiler struct {
	opcoes     Opcoes
	carregador *CarregadorUnidades // Leitor das unidades
	saida      Saida               // Destino do artefato
	relatorio  io.Writer           // Onde vão árvore, resumo e simulação
}

// NovoCompilador cria um tradutor que grava em arquivo e reporta em stdout
func NovoCompilador(opcoes Opcoes) *Compiler {
	return NovoCompiladorCom(opcoes, SaidaArquivo{}, os.Stdout)
}

// NovoCompiladorCom permite trocar a saída e o relatório
func NovoCompiladorCom(opcoes Opcoes, saida Saida, relatorio io.Writer) *Compiler {
	if opcoes.Legado {
		opcoes.ReiniciarContadorChamadas = true
	}
	return &Compiler{
		opcoes:     opcoes,
		carregador: &CarregadorUnidades{Tolerante: opcoes.Legado},
		saida:      saida,
		relatorio:  relatorio,
	}
}

// CompilarCaminho traduz um arquivo .vm ou um diretório e devolve o caminho do artefato
func (c *Compiler) CompilarCaminho(caminho string) (string, error) {
	backend, err := assembly.NewAssemblyBackend(c.opcoes.Arch, hack.Opcoes{
		Legado:                    c.opcoes.Legado,
		ReiniciarContadorChamadas: c.opcoes.ReiniciarContadorChamadas,
	})
	if err != nil {
		return "", err
	}

	entrada, err := ResolverEntrada(caminho, backend.GetExtension())
	if err != nil {
		return "", err
	}
	debug.Evento("entrada resolvida", "unidades", len(entrada.Caminhos), "saida", entrada.Saida)

	programa, err := c.carregador.Carregar(entrada.Caminhos)
	if err != nil {
		return "", err
	}

	if c.opcoes.Arvore {
		vm.NovoVisualizador(debug.Enabled).ImprimirArvore(c.relatorio, programa)
	}

	resultado, err := backend.Compile(programa)
	if err != nil {
		return "", err
	}

	// Só grava depois da tradução inteira dar certo
	if err := c.saida.Escrever(entrada.Saida, resultado.Codigo); err != nil {
		return "", errors.Wrapf(err, "erro ao gravar %q", entrada.Saida)
	}

	if c.opcoes.Resumo {
		c.imprimirResumo(resultado)
	}

	if c.opcoes.CiclosSimulacao > 0 {
		if err := c.simular(resultado.Codigo); err != nil {
			return entrada.Saida, err
		}
	}

	return entrada.Saida, nil
}

// imprimirResumo mostra comandos e instruções de cada unidade
func (c *Compiler) imprimirResumo(resultado *backends.CompilationResult) {
	resumo := table.NewWriter()
	resumo.SetTitle("Unidades traduzidas")
	resumo.AppendHeader(table.Row{"Unidade", "Comandos", "Instruções"})

	comandos := 0
	for _, u := range resultado.Unidades {
		resumo.AppendRow(table.Row{u.Nome, u.Comandos, u.Instrucoes})
		comandos += u.Comandos
	}
	resumo.AppendFooter(table.Row{"Total", comandos, resultado.TotalInstrucoes()})

	fmt.Fprintln(c.relatorio, resumo.Render())
	fmt.Fprintf(c.relatorio, "Rótulos declarados: %d\n", resultado.Rotulos)
}

// simular monta o assembly gerado e executa no simulador
func (c *Compiler) simular(codigo string) error {
	programa, err := simulador.Montar(codigo)
	if err != nil {
		return errors.Wrap(err, "erro ao montar a saída")
	}

	cpu := simulador.NovaCPU(programa)
	err = cpu.Executar(c.opcoes.CiclosSimulacao)
	cpu.ImprimirEstado(c.relatorio)
	return err
}
