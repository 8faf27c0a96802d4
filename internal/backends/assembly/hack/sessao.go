package hack

import "fmt"

// Sessao guarda o estado que atravessa todas as unidades de uma tradução.
// Cada tradução completa usa a sua; não compartilhe entre traduções.
type Sessao struct {
	rotulos  int    // Contador das comparações, nunca reinicia
	unidade  string // Unidade atual, prefixo das variáveis static
	funcao   string // Função atual, prefixo dos endereços de retorno
	chamadas int    // Contador dos endereços de retorno

	reiniciarChamadas bool
}

// NovaSessao cria uma sessão zerada
func NovaSessao(reiniciarChamadas bool) *Sessao {
	return &Sessao{reiniciarChamadas: reiniciarChamadas}
}

// IniciarUnidade troca a unidade atual
func (s *Sessao) IniciarUnidade(nome string) {
	s.unidade = nome
	s.funcao = ""
}

// IniciarFuncao troca a função atual
func (s *Sessao) IniciarFuncao(nome string) {
	s.funcao = nome
	if s.reiniciarChamadas {
		s.chamadas = 0
	}
}

// NovaComparacao devolve o par de rótulos de uma comparação
func (s *Sessao) NovaComparacao() (falso, continua string) {
	n := s.rotulos
	s.rotulos++
	return fmt.Sprintf("FALSE%d", n), fmt.Sprintf("CONTINUE%d", n)
}

// NovoRetorno devolve o rótulo do endereço de retorno de uma chamada
func (s *Sessao) NovoRetorno() string {
	chamador := s.funcao
	if chamador == "" {
		chamador = s.unidade
	}
	rotulo := fmt.Sprintf("%s$ret.%d", chamador, s.chamadas)
	s.chamadas++
	return rotulo
}

// Static devolve o símbolo de uma variável static da unidade atual
func (s *Sessao) Static(indice int) string {
	return fmt.Sprintf("%s.%d", s.unidade, indice)
}

// Unidade devolve a unidade atual
func (s *Sessao) Unidade() string { return s.unidade }
