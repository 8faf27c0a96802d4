package vm

import (
	"io"

	"github.com/khevencolino/Tradutor/internal/utils"
)

// AnalisarUnidade lê e classifica todos os comandos de uma unidade
func AnalisarUnidade(nome, caminho string, r io.Reader) (Unidade, error) {
	unidade := Unidade{Nome: nome, Caminho: caminho}

	linhas, err := LerLinhas(r)
	if err != nil {
		return unidade, utils.EnvolverErro(err, nome, 0, caminho)
	}

	for _, linha := range linhas {
		cmd, err := Classificar(linha)
		if err != nil {
			return unidade, utils.EnvolverErro(err, nome, linha.Numero, linha.Texto)
		}
		unidade.Comandos = append(unidade.Comandos, cmd)
	}

	return unidade, nil
}
