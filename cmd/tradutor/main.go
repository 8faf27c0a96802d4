package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tebeka/atexit"

	"github.com/khevencolino/Tradutor/internal/compiler"
	"github.com/khevencolino/Tradutor/internal/debug"
)

func main() {
	entrada, opcoes, ativarDebug, showHelp, err := processarArgumentos(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		atexit.Exit(1)
	}

	if showHelp {
		mostrarAjuda(os.Stdout)
		return
	}

	debug.Configurar(ativarDebug, os.Stderr)
	atexit.Register(func() {
		debug.Evento("tradutor encerrado")
	})

	compilador := compiler.NovoCompilador(opcoes)

	saida, err := compilador.CompilarCaminho(entrada)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		atexit.Exit(1)
	}

	debug.Printf("Artefato gravado em %s", saida)
	atexit.Exit(0)
}

func processarArgumentos(args []string) (string, compiler.Opcoes, bool, bool, error) {
	flags := flag.NewFlagSet("tradutor", flag.ContinueOnError)

	// Define flags
	arch := flags.String("arch", "hack", "Arquitetura alvo (hack)")
	depurar := flags.Bool("debug", false, "Ativar mensagens de debug")
	legado := flags.Bool("legado", false, "Compatibilidade com o tradutor antigo")
	arvore := flags.Bool("arvore", false, "Mostra a estrutura do programa")
	resumo := flags.Bool("resumo", false, "Mostra a tabela de unidades traduzidas")
	simular := flags.Int("simular", 0, "Executa a saída no simulador por até N ciclos")
	help := flags.Bool("help", false, "Mostra ajuda")

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return "", compiler.Opcoes{}, false, true, nil
		}
		return "", compiler.Opcoes{}, false, false, err
	}

	// Verifica se help foi solicitado
	if *help {
		return "", compiler.Opcoes{}, false, true, nil
	}

	if *simular < 0 {
		return "", compiler.Opcoes{}, false, false, fmt.Errorf("-simular precisa ser positivo")
	}

	// Verifica se a entrada foi fornecida
	if flags.NArg() != 1 {
		return "", compiler.Opcoes{}, false, false, fmt.Errorf("informe exatamente um arquivo .vm ou diretório, recebidos %d", flags.NArg())
	}

	opcoes := compiler.Opcoes{
		Arch:                      *arch,
		Legado:                    *legado,
		ReiniciarContadorChamadas: *legado,
		Arvore:                    *arvore,
		Resumo:                    *resumo,
		CiclosSimulacao:           *simular,
	}

	return flags.Arg(0), opcoes, *depurar, false, nil
}

func mostrarAjuda(w io.Writer) {
	fmt.Fprint(w, `Tradutor VM - Máquina virtual de pilha para Assembly Hack

USO:
    tradutor [flags] <arquivo.vm | diretório>

FLAGS:
    -arch=<arquitetura> Arquitetura alvo (padrão: hack)
    -debug              Ativar mensagens de debug
    -legado             Compatibilidade com o tradutor antigo
    -arvore             Mostra a estrutura do programa
    -resumo             Mostra a tabela de unidades traduzidas
    -simular=<N>        Executa a saída no simulador por até N ciclos
    -help               Mostra esta ajuda

ENTRADA:
    arquivo.vm   Traduz uma unidade e grava arquivo.asm ao lado
    diretório    Traduz todos os .vm (Sys.vm primeiro) e grava <dir>/<dir>.asm

MODO LEGADO:
    - Linhas desconhecidas viram return
    - Rótulos repetidos geram aviso em vez de erro
    - Contador de retornos reiniciado a cada function
    - Unidades ilegíveis são ignoradas
    - O formato da saída não muda: rótulos <f>$ret.<n> e <f>$end_init,
      eco "// <linha>" e palavras-chave exatas (addx continua desconhecido)

EXEMPLOS:
    tradutor Simples.vm                      # Gera Simples.asm
    tradutor programas/Fibonacci             # Gera programas/Fibonacci/Fibonacci.asm
    tradutor -resumo -simular=100000 Fib     # Traduz, resume e executa
    tradutor -debug -legado antigo.vm        # Com mensagens de debug
`)
}
