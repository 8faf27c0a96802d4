package hack

import (
	"github.com/pkg/errors"

	"github.com/khevencolino/Tradutor/internal/backends"
	"github.com/khevencolino/Tradutor/internal/debug"
	"github.com/khevencolino/Tradutor/internal/utils"
	"github.com/khevencolino/Tradutor/internal/vm"
)

const (
	// FuncaoEntrada é chamada pelo bootstrap quando existe no programa
	FuncaoEntrada = "Sys.init"
	// NomeBootstrap aparece no rótulo de retorno da chamada inicial
	NomeBootstrap = "Bootstrap"
	// Valor inicial de SP
	InicioPilha = 256
)

var ErrComandoDesconhecido = errors.New("comando desconhecido")

// Opcoes ajusta a compatibilidade com o tradutor antigo
type Opcoes struct {
	// Legado trata linhas desconhecidas como return e tolera rótulos repetidos
	Legado bool
	// ReiniciarContadorChamadas zera o contador de retornos a cada function
	ReiniciarContadorChamadas bool
}

type HackBackend struct {
	opcoes  Opcoes
	sessao  *Sessao
	emissor *emissor
}

func NewHackBackend(opcoes Opcoes) *HackBackend {
	return &HackBackend{opcoes: opcoes}
}

func (h *HackBackend) GetName() string      { return "Assembly Hack" }
func (h *HackBackend) GetExtension() string { return ".asm" }

// Compile traduz o programa inteiro com uma sessão nova
func (h *HackBackend) Compile(programa *vm.Programa) (*backends.CompilationResult, error) {
	debug.Printf("Traduzindo %d unidades para %s...", len(programa.Unidades), h.GetName())

	h.sessao = NovaSessao(h.opcoes.ReiniciarContadorChamadas)
	h.emissor = novoEmissor()
	resultado := &backends.CompilationResult{}

	h.gerarBootstrap(programa.DefineFuncao(FuncaoEntrada))

	for _, unidade := range programa.Unidades {
		resumo, err := h.traduzirUnidade(unidade)
		if err != nil {
			return nil, err
		}
		resultado.Unidades = append(resultado.Unidades, resumo)
	}

	if err := h.emissor.verificarRotulos(); err != nil {
		if !h.opcoes.Legado {
			return nil, err
		}
		debug.Aviso("rótulos repetidos na saída", "erro", err)
	}

	resultado.Codigo = h.emissor.output.String()
	resultado.Rotulos = len(h.emissor.declarados)
	return resultado, nil
}

func (h *HackBackend) traduzirUnidade(unidade vm.Unidade) (backends.ResumoUnidade, error) {
	h.sessao.IniciarUnidade(unidade.Nome)
	antes := h.emissor.instrucoes

	for _, cmd := range unidade.Comandos {
		if err := h.traduzirComando(cmd); err != nil {
			return backends.ResumoUnidade{}, utils.EnvolverErro(err, unidade.Nome, cmd.Linha, cmd.Texto)
		}
	}

	resumo := backends.ResumoUnidade{
		Nome:       unidade.Nome,
		Comandos:   len(unidade.Comandos),
		Instrucoes: h.emissor.instrucoes - antes,
	}
	debug.Evento("unidade traduzida", "unidade", resumo.Nome, "comandos", resumo.Comandos, "instrucoes", resumo.Instrucoes)
	return resumo, nil
}

// traduzirComando ecoa a linha fonte e emite o código do comando
func (h *HackBackend) traduzirComando(cmd vm.Comando) error {
	if cmd.Tipo == vm.C_DESCONHECIDO {
		if !h.opcoes.Legado {
			return ErrComandoDesconhecido
		}
		debug.Aviso("comando desconhecido tratado como return", "unidade", h.sessao.Unidade(), "linha", cmd.Linha, "texto", cmd.Texto)
		cmd.Tipo = vm.C_RETURN
	}

	h.emissor.comentario(cmd.Texto)

	switch cmd.Tipo {
	case vm.C_ARITMETICO:
		return h.aritmetica(cmd.Operacao)
	case vm.C_PUSH:
		return h.push(cmd.Segmento, cmd.Indice)
	case vm.C_POP:
		return h.pop(cmd.Segmento, cmd.Indice)
	case vm.C_LABEL:
		h.label(cmd.Nome)
	case vm.C_GOTO:
		h.gotoIncondicional(cmd.Nome)
	case vm.C_IF:
		h.ifGoto(cmd.Nome)
	case vm.C_FUNCTION:
		h.funcao(cmd.Nome, cmd.Quantidade)
	case vm.C_CALL:
		h.chamada(cmd.Nome, cmd.Quantidade)
	case vm.C_RETURN:
		h.retorno()
	}
	return nil
}

// gerarBootstrap inicializa SP e, havendo ponto de entrada, chama Sys.init
func (h *HackBackend) gerarBootstrap(chamarEntrada bool) {
	e := h.emissor
	e.comentario("bootstrap")
	e.carregarA(InicioPilha)
	e.instrucao("D=A")
	e.gravarRegistrador("SP")

	if !chamarEntrada {
		return
	}

	h.sessao.IniciarUnidade(NomeBootstrap)
	e.comentario("call " + FuncaoEntrada + " 0")
	h.chamada(FuncaoEntrada, 0)

	parada := NomeBootstrap + "$halt"
	e.rotulo(parada)
	e.saltar(parada, "")
}
