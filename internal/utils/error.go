package utils

import (
	"fmt"
	"strings"
)

// CompilerError representa um erro do tradutor com informações de posição
type CompilerError struct {
	Mensagem string // Mensagem de erro
	Unidade  string // Unidade de tradução onde ocorreu o erro
	Linha    int    // Linha do arquivo fonte
	Detalhes string // Detalhes adicionais do erro
	Causa    error  // Erro original, quando houver
}

// Error monta a mensagem com a posição, quando conhecida
func (e *CompilerError) Error() string {
	var builder strings.Builder
	builder.WriteString(e.Mensagem)
	if e.Unidade != "" {
		builder.WriteString(" em ")
		builder.WriteString(e.Unidade)
		if e.Linha > 0 {
			builder.WriteString(fmt.Sprintf(":%d", e.Linha))
		}
	} else if e.Linha > 0 {
		builder.WriteString(fmt.Sprintf(" na linha %d", e.Linha))
	}
	if e.Detalhes != "" {
		builder.WriteString(" (")
		builder.WriteString(e.Detalhes)
		builder.WriteString(")")
	}
	return builder.String()
}

// Cause expõe o erro original para errors.Cause
func (e *CompilerError) Cause() error { return e.Causa }

// Unwrap expõe o erro original para errors.Is e errors.As
func (e *CompilerError) Unwrap() error { return e.Causa }

// NovoErro cria um novo erro do tradutor
func NovoErro(mensagem string, unidade string, linha int, detalhes string) *CompilerError {
	return &CompilerError{
		Mensagem: mensagem,
		Unidade:  unidade,
		Linha:    linha,
		Detalhes: detalhes,
	}
}

// EnvolverErro posiciona um erro já existente numa unidade e linha
func EnvolverErro(causa error, unidade string, linha int, detalhes string) *CompilerError {
	return &CompilerError{
		Mensagem: causa.Error(),
		Unidade:  unidade,
		Linha:    linha,
		Detalhes: detalhes,
		Causa:    causa,
	}
}
