package vm

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Maior linha fonte aceita pelo leitor
const TamanhoMaximoLinha = 1 << 20

// Linha é uma linha fonte já sem comentário e sem espaços nas pontas
type Linha struct {
	Numero int
	Texto  string
}

// LerLinhas lê o texto fonte e devolve só as linhas com comandos
func LerLinhas(r io.Reader) ([]Linha, error) {
	var linhas []Linha

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), TamanhoMaximoLinha)
	numero := 0
	for scanner.Scan() {
		numero++
		texto := RemoverComentario(scanner.Text())
		if texto == "" {
			continue
		}
		linhas = append(linhas, Linha{Numero: numero, Texto: texto})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "erro de leitura após a linha %d", numero)
	}

	return linhas, nil
}

// RemoverComentario corta o comentário // e apara os espaços
func RemoverComentario(linha string) string {
	if i := strings.Index(linha, "//"); i >= 0 {
		linha = linha[:i]
	}
	return strings.TrimSpace(linha)
}
