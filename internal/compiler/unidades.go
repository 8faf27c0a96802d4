package compiler

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/khevencolino/Tradutor/internal/debug"
	"github.com/khevencolino/Tradutor/internal/utils"
	"github.com/khevencolino/Tradutor/internal/vm"
)

const (
	ExtensaoFonte  = ".vm"
	UnidadeEntrada = "Sys" // Unidade que define Sys.init, sempre a primeira
)

var ErrEntradaInvalida = errors.New("entrada inválida: informe um arquivo .vm ou um diretório")

// Entrada descreve as unidades a traduzir e o artefato a produzir
type Entrada struct {
	Caminhos []string // Arquivos .vm na ordem de tradução
	Saida    string   // Caminho do artefato assembly
}

// ResolverEntrada decide entre arquivo único e diretório
func ResolverEntrada(caminho, extensaoSaida string) (*Entrada, error) {
	switch {
	case utils.EhArquivo(caminho) && filepath.Ext(caminho) == ExtensaoFonte:
		return &Entrada{
			Caminhos: []string{caminho},
			Saida:    strings.TrimSuffix(caminho, ExtensaoFonte) + extensaoSaida,
		}, nil

	case utils.EhDiretorio(caminho):
		caminhos, err := listarUnidades(caminho)
		if err != nil {
			return nil, err
		}
		nome := filepath.Base(filepath.Clean(caminho))
		return &Entrada{
			Caminhos: caminhos,
			Saida:    filepath.Join(caminho, nome+extensaoSaida),
		}, nil

	default:
		return nil, errors.Wrapf(ErrEntradaInvalida, "%q", caminho)
	}
}

// listarUnidades lista os .vm do diretório com Sys.vm antes dos demais
func listarUnidades(diretorio string) ([]string, error) {
	itens, err := os.ReadDir(diretorio)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao listar %q", diretorio)
	}

	var nomes []string
	for _, item := range itens {
		if item.IsDir() || filepath.Ext(item.Name()) != ExtensaoFonte {
			continue
		}
		nomes = append(nomes, item.Name())
	}
	OrdenarUnidades(nomes)

	caminhos := make([]string, len(nomes))
	for i, nome := range nomes {
		caminhos[i] = filepath.Join(diretorio, nome)
	}
	return caminhos, nil
}

// OrdenarUnidades põe a unidade de entrada primeiro e o resto em ordem lexical
func OrdenarUnidades(nomes []string) {
	entrada := UnidadeEntrada + ExtensaoFonte
	sort.SliceStable(nomes, func(i, j int) bool {
		if nomes[i] == entrada || nomes[j] == entrada {
			return nomes[i] == entrada && nomes[j] != entrada
		}
		return nomes[i] < nomes[j]
	})
}

// NomeUnidade é o nome do arquivo sem a extensão
func NomeUnidade(caminho string) string {
	return strings.TrimSuffix(filepath.Base(caminho), ExtensaoFonte)
}

// CarregadorUnidades lê e classifica as unidades de um programa
type CarregadorUnidades struct {
	// Tolerante ignora unidades ilegíveis em vez de falhar
	Tolerante bool
}

// Carregar monta o programa na ordem dada
func (cu *CarregadorUnidades) Carregar(caminhos []string) (*vm.Programa, error) {
	programa := &vm.Programa{}

	for _, caminho := range caminhos {
		nome := NomeUnidade(caminho)
		unidade, err := cu.carregarUnidade(nome, caminho)
		if err != nil {
			if cu.Tolerante && errors.Cause(err) == errIlegivel {
				debug.Aviso("unidade ignorada", "unidade", nome, "erro", err)
				continue
			}
			return nil, err
		}
		debug.Evento("unidade carregada", "unidade", nome, "comandos", len(unidade.Comandos))
		programa.Unidades = append(programa.Unidades, unidade)
	}

	return programa, nil
}

var errIlegivel = errors.New("unidade ilegível")

func (cu *CarregadorUnidades) carregarUnidade(nome, caminho string) (vm.Unidade, error) {
	fonte, err := utils.LerArquivo(caminho)
	if err != nil {
		return vm.Unidade{}, utils.EnvolverErro(errIlegivel, nome, 0, err.Error())
	}

	return vm.AnalisarUnidade(nome, caminho, strings.NewReader(fonte))
}
