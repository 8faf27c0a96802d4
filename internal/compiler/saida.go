package compiler

import "github.com/khevencolino/Tradutor/internal/utils"

// Saida recebe o texto final de uma tradução
type Saida interface {
	Escrever(caminho, conteudo string) error
}

// SaidaArquivo grava o artefato no sistema de arquivos
type SaidaArquivo struct{}

func (SaidaArquivo) Escrever(caminho, conteudo string) error {
	return utils.EscreverArquivo(caminho, conteudo)
}
