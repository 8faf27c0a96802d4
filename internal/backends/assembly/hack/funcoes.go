package hack

// Registradores de rascunho do return: base do quadro e endereço de retorno
const (
	rascunhoQuadro  = "R13"
	rascunhoRetorno = "R14"
	rascunhoLocais  = "R13"
)

// Tamanho do quadro salvo pela chamada: retorno, LCL, ARG, THIS, THAT
const tamanhoQuadro = 5

func (h *HackBackend) label(nome string) {
	h.emissor.rotulo(nome)
}

func (h *HackBackend) gotoIncondicional(nome string) {
	h.emissor.saltar(nome, "")
}

// ifGoto desempilha e pula se o valor não for zero
func (h *HackBackend) ifGoto(nome string) {
	h.emissor.popD()
	h.emissor.saltar(nome, "JNE")
}

// funcao declara a entrada e zera nLocais posições da pilha
func (h *HackBackend) funcao(nome string, nLocais int) {
	e := h.emissor
	h.sessao.IniciarFuncao(nome)

	laco := nome + "$init_loop"
	fim := nome + "$end_init"

	e.rotulo(nome)
	e.carregarA(nLocais)
	e.instrucao("D=A")
	e.gravarRegistrador(rascunhoLocais)
	e.saltar(fim, "JEQ")
	e.rotulo(laco)
	e.carregarA("SP")
	e.instrucao("A=M")
	e.instrucao("M=0")
	e.carregarA("SP")
	e.instrucao("M=M+1")
	e.carregarA(rascunhoLocais)
	e.instrucao("MD=M-1")
	e.saltar(laco, "JGT")
	e.rotulo(fim)
}

// chamada salva o quadro do chamador, reposiciona ARG e LCL e pula
func (h *HackBackend) chamada(nome string, nArgs int) {
	e := h.emissor
	retorno := h.sessao.NovoRetorno()

	e.carregarA(retorno)
	e.instrucao("D=A")
	e.pushD()
	for _, registrador := range []string{"LCL", "ARG", "THIS", "THAT"} {
		e.pushRegistrador(registrador)
	}

	// ARG = SP - 5 - nArgs
	e.lerRegistrador("SP")
	e.carregarA(tamanhoQuadro)
	e.instrucao("D=D-A")
	e.carregarA(nArgs)
	e.instrucao("D=D-A")
	e.gravarRegistrador("ARG")

	// LCL = SP
	e.lerRegistrador("SP")
	e.gravarRegistrador("LCL")

	e.saltar(nome, "")
	e.rotulo(retorno)
}

// retorno devolve o topo em ARG[0], restaura o quadro e volta ao chamador
func (h *HackBackend) retorno() {
	e := h.emissor

	// quadro = LCL
	e.lerRegistrador("LCL")
	e.gravarRegistrador(rascunhoQuadro)

	// retorno = *(quadro - 5), lido antes de ARG[0] ser sobrescrito
	e.carregarA(tamanhoQuadro)
	e.instrucao("A=D-A")
	e.instrucao("D=M")
	e.gravarRegistrador(rascunhoRetorno)

	// *ARG = pop()
	e.popD()
	e.carregarA("ARG")
	e.instrucao("A=M")
	e.instrucao("M=D")

	// SP = ARG + 1
	e.carregarA("ARG")
	e.instrucao("D=M+1")
	e.gravarRegistrador("SP")

	// THAT, THIS, ARG, LCL = *(--quadro)
	for _, registrador := range []string{"THAT", "THIS", "ARG", "LCL"} {
		e.carregarA(rascunhoQuadro)
		e.instrucao("AM=M-1")
		e.instrucao("D=M")
		e.gravarRegistrador(registrador)
	}

	e.carregarA(rascunhoRetorno)
	e.instrucao("A=M")
	e.instrucao("0;JMP")
}
