package utils

import (
	"os"
	"path/filepath"
)

// LerArquivo lê um arquivo e retorna seu conteúdo
func LerArquivo(nomeArquivo string) (string, error) {
	bytesConteudo, err := os.ReadFile(nomeArquivo)
	if err != nil {
		return "", NovoErro("erro ao ler arquivo", filepath.Base(nomeArquivo), 0, err.Error())
	}
	return string(bytesConteudo), nil
}

// EscreverArquivo escreve conteúdo em um arquivo
func EscreverArquivo(nomeArquivo string, conteudo string) error {
	// Cria o diretório se não existir
	diretorio := filepath.Dir(nomeArquivo)
	if err := os.MkdirAll(diretorio, 0755); err != nil {
		return NovoErro("erro ao criar diretório", "", 0, err.Error())
	}

	// Escreve num temporário e renomeia, assim nunca fica artefato pela metade
	temporario := nomeArquivo + ".tmp"
	if err := os.WriteFile(temporario, []byte(conteudo), 0644); err != nil {
		return NovoErro("erro ao escrever arquivo", "", 0, err.Error())
	}
	if err := os.Rename(temporario, nomeArquivo); err != nil {
		os.Remove(temporario)
		return NovoErro("erro ao escrever arquivo", "", 0, err.Error())
	}

	return nil
}

// EhDiretorio informa se o caminho existe e é um diretório
func EhDiretorio(caminho string) bool {
	info, err := os.Stat(caminho)
	return err == nil && info.IsDir()
}

// EhArquivo informa se o caminho existe e é um arquivo regular
func EhArquivo(caminho string) bool {
	info, err := os.Stat(caminho)
	return err == nil && info.Mode().IsRegular()
}
