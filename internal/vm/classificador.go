package vm

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Maior valor que cabe numa instrução A
const MaiorConstante = 32767

var (
	ErrOperandos = errors.New("número de operandos inválido")
	ErrIndice    = errors.New("índice inválido")
	ErrSegmento  = errors.New("segmento desconhecido")
)

// Classificar transforma uma linha normalizada em um Comando.
// Palavras-chave desconhecidas viram C_DESCONHECIDO sem erro; cabe ao
// tradutor decidir se isso é erro ou um return, como no modo legado.
func Classificar(linha Linha) (Comando, error) {
	partes := strings.Fields(linha.Texto)
	cmd := Comando{Texto: linha.Texto, Linha: linha.Numero, Tipo: C_DESCONHECIDO}
	if len(partes) == 0 {
		return cmd, nil
	}

	palavra := partes[0]
	operandos := partes[1:]

	if op, ok := operacoes[palavra]; ok {
		cmd.Tipo = C_ARITMETICO
		cmd.Operacao = op
		return cmd, exigirOperandos(palavra, operandos, 0)
	}

	switch palavra {
	case "push", "pop":
		cmd.Tipo = C_PUSH
		if palavra == "pop" {
			cmd.Tipo = C_POP
		}
		if err := exigirOperandos(palavra, operandos, 2); err != nil {
			return cmd, err
		}
		return classificarAcessoMemoria(cmd, operandos[0], operandos[1])

	case "label", "goto", "if-goto":
		cmd.Tipo = map[string]TipoComando{"label": C_LABEL, "goto": C_GOTO, "if-goto": C_IF}[palavra]
		if err := exigirOperandos(palavra, operandos, 1); err != nil {
			return cmd, err
		}
		cmd.Nome = operandos[0]
		return cmd, nil

	case "function", "call":
		cmd.Tipo = C_FUNCTION
		if palavra == "call" {
			cmd.Tipo = C_CALL
		}
		if err := exigirOperandos(palavra, operandos, 2); err != nil {
			return cmd, err
		}
		quantidade, err := lerIndice(operandos[1])
		if err != nil {
			return cmd, errors.Wrapf(err, "%s %s", palavra, operandos[0])
		}
		cmd.Nome = operandos[0]
		cmd.Quantidade = quantidade
		return cmd, nil

	case "return":
		cmd.Tipo = C_RETURN
		return cmd, exigirOperandos(palavra, operandos, 0)
	}

	return cmd, nil
}

// classificarAcessoMemoria valida segmento e índice de push/pop
func classificarAcessoMemoria(cmd Comando, nomeSegmento, textoIndice string) (Comando, error) {
	segmento, ok := segmentos[nomeSegmento]
	if !ok {
		return cmd, errors.Wrapf(ErrSegmento, "%q", nomeSegmento)
	}
	indice, err := lerIndice(textoIndice)
	if err != nil {
		return cmd, err
	}

	switch segmento {
	case SEG_CONSTANT:
		if cmd.Tipo == C_POP {
			return cmd, errors.Wrap(ErrSegmento, "pop constant não tem destino")
		}
		if indice > MaiorConstante {
			return cmd, errors.Wrapf(ErrIndice, "constante %d maior que %d", indice, MaiorConstante)
		}
	case SEG_POINTER:
		if indice > 1 {
			return cmd, errors.Wrapf(ErrIndice, "pointer %d fora de 0..1", indice)
		}
	case SEG_TEMP:
		if indice > 7 {
			return cmd, errors.Wrapf(ErrIndice, "temp %d fora de 0..7", indice)
		}
	}

	cmd.Segmento = segmento
	cmd.Indice = indice
	return cmd, nil
}

func exigirOperandos(palavra string, operandos []string, esperado int) error {
	if len(operandos) != esperado {
		return errors.Wrapf(ErrOperandos, "%s espera %d, recebeu %d", palavra, esperado, len(operandos))
	}
	return nil
}

func lerIndice(texto string) (int, error) {
	valor, err := strconv.Atoi(texto)
	if err != nil || valor < 0 {
		return 0, errors.Wrapf(ErrIndice, "%q não é inteiro não negativo", texto)
	}
	return valor, nil
}
