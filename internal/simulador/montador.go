package simulador

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/khevencolino/Tradutor/internal/vm"
)

var ErrRotuloDuplicado = errors.New("rótulo duplicado")

// Programa é o resultado da montagem de um texto assembly
type Programa struct {
	Instrucoes []uint16
	Simbolos   map[string]uint16 // Rótulos, variáveis e predefinidos
	Rotulos    map[string]uint16 // Só os rótulos declarados com (NOME)
	Linhas     map[uint16]int    // Endereço da instrução -> linha do texto
}

// Endereco devolve o endereço de um símbolo qualquer
func (p *Programa) Endereco(simbolo string) (uint16, bool) {
	endereco, ok := p.Simbolos[simbolo]
	return endereco, ok
}

// Binario devolve o programa no formato texto .hack, uma palavra por linha
func (p *Programa) Binario() string {
	var sb strings.Builder
	for _, palavra := range p.Instrucoes {
		sb.WriteString(fmt.Sprintf("%016b\n", palavra))
	}
	return sb.String()
}

// Montador converte assembly Hack em palavras de máquina
type Montador struct {
	simbolos     map[string]uint16
	rotulos      map[string]uint16
	proximaLivre uint16
}

// NovoMontador cria um montador com a tabela de símbolos predefinidos
func NovoMontador() *Montador {
	m := &Montador{
		simbolos:     make(map[string]uint16),
		rotulos:      make(map[string]uint16),
		proximaLivre: PrimeiraVariavel,
	}
	for nome, endereco := range simbolosPredefinidos {
		m.simbolos[nome] = endereco
	}
	return m
}

// Montar monta o texto com um montador novo
func Montar(codigo string) (*Programa, error) {
	return NovoMontador().Montar(codigo)
}

// Montar faz a primeira passada para os rótulos e a segunda para as instruções
func (m *Montador) Montar(codigo string) (*Programa, error) {
	linhas := strings.Split(codigo, "\n")

	if err := m.passada1(linhas); err != nil {
		return nil, err
	}
	return m.passada2(linhas)
}

func (m *Montador) passada1(linhas []string) error {
	var endereco uint32

	for i, bruta := range linhas {
		linha := limparLinha(bruta)
		if linha == "" {
			continue
		}
		if strings.HasPrefix(linha, "(") {
			if !strings.HasSuffix(linha, ")") || len(linha) < 3 {
				return fmt.Errorf("rótulo malformado %q na linha %d", linha, i+1)
			}
			nome := linha[1 : len(linha)-1]
			if _, existe := m.rotulos[nome]; existe {
				return errors.Wrapf(ErrRotuloDuplicado, "%q na linha %d", nome, i+1)
			}
			if endereco >= TamanhoMemoria {
				return fmt.Errorf("rótulo %q na linha %d aponta para fora da ROM", nome, i+1)
			}
			m.rotulos[nome] = uint16(endereco)
			m.simbolos[nome] = uint16(endereco)
			continue
		}
		endereco++
	}

	if endereco > TamanhoMemoria {
		return fmt.Errorf("programa com %d instruções não cabe na ROM", endereco)
	}
	return nil
}

func (m *Montador) passada2(linhas []string) (*Programa, error) {
	programa := &Programa{
		Rotulos: m.rotulos,
		Linhas:  make(map[uint16]int),
	}

	for i, bruta := range linhas {
		linha := limparLinha(bruta)
		if linha == "" || strings.HasPrefix(linha, "(") {
			continue
		}

		var (
			palavra uint16
			err     error
		)
		if strings.HasPrefix(linha, "@") {
			palavra, err = m.montarA(linha[1:])
		} else {
			palavra, err = montarC(linha)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "linha %d", i+1)
		}

		programa.Linhas[uint16(len(programa.Instrucoes))] = i + 1
		programa.Instrucoes = append(programa.Instrucoes, palavra)
	}

	programa.Simbolos = m.simbolos
	return programa, nil
}

// montarA resolve constantes, rótulos e aloca variáveis novas
func (m *Montador) montarA(operando string) (uint16, error) {
	if operando == "" {
		return 0, fmt.Errorf("instrução A vazia")
	}
	if operando[0] >= '0' && operando[0] <= '9' {
		valor, err := strconv.Atoi(operando)
		if err != nil || valor > vm.MaiorConstante {
			return 0, fmt.Errorf("constante inválida %q", operando)
		}
		return uint16(valor), nil
	}

	if endereco, ok := m.simbolos[operando]; ok {
		return endereco, nil
	}
	endereco := m.proximaLivre
	m.simbolos[operando] = endereco
	m.proximaLivre++
	return endereco, nil
}

// montarC codifica dest=comp;jump
func montarC(linha string) (uint16, error) {
	dest, resto := "", linha
	if i := strings.Index(resto, "="); i >= 0 {
		dest, resto = resto[:i], resto[i+1:]
	}
	comp, salto := resto, ""
	if i := strings.Index(resto, ";"); i >= 0 {
		comp, salto = resto[:i], resto[i+1:]
	}

	bitsComp, ok := computacoes[comp]
	if !ok {
		return 0, fmt.Errorf("computação desconhecida %q", comp)
	}
	bitsDest, ok := destinos[dest]
	if !ok {
		return 0, fmt.Errorf("destino desconhecido %q", dest)
	}
	bitsSalto, ok := saltos[salto]
	if !ok {
		return 0, fmt.Errorf("salto desconhecido %q", salto)
	}

	return bitC | bitsComp<<6 | bitsDest<<3 | bitsSalto, nil
}

// limparLinha tira comentário e todos os espaços
func limparLinha(linha string) string {
	linha = vm.RemoverComentario(linha)
	return strings.Join(strings.Fields(linha), "")
}
