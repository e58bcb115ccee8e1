package api

import (
	"math/rand"

	"oabstudy/internal/models"
)

// BankQuestion is a question plus its answer key.
type BankQuestion struct {
	models.Question
	Answer      string
	Explanation string
}

// QuestionBank is an in-memory, read-only set of questions.
type QuestionBank struct {
	ordered []BankQuestion
	byID    map[string]BankQuestion
	shuffle bool
}

func NewQuestionBank(questions []BankQuestion, shuffle bool) *QuestionBank {
	b := &QuestionBank{byID: make(map[string]BankQuestion, len(questions)), shuffle: shuffle}
	for _, q := range questions {
		b.ordered = append(b.ordered, q)
		b.byID[q.ID] = q
	}
	return b
}

func (b *QuestionBank) Get(id string) (BankQuestion, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// Pick returns up to n question ids for a new session.
func (b *QuestionBank) Pick(n int) []string {
	idx := make([]int, len(b.ordered))
	for i := range idx {
		idx[i] = i
	}
	if b.shuffle {
		rand.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	}
	if n > len(idx) {
		n = len(idx)
	}

	ids := make([]string, 0, n)
	for _, i := range idx[:n] {
		ids = append(ids, b.ordered[i].ID)
	}
	return ids
}

// DefaultQuestionBank is the small OAB first-phase sample shipped with the dev backend.
func DefaultQuestionBank() *QuestionBank {
	return NewQuestionBank([]BankQuestion{
		{
			Question: models.Question{
				ID:        "oab-etica-001",
				Statement: "Segundo o Estatuto da Advocacia, a inscrição como advogado exige, entre outros requisitos:",
				Alternatives: map[string]string{
					"A": "diploma de graduação em Direito e aprovação em Exame de Ordem",
					"B": "apenas diploma de graduação em Direito",
					"C": "estágio profissional de cinco anos",
					"D": "indicação de dois advogados inscritos",
				},
				Difficulty: "facil",
				Area:       "etica",
			},
			Answer:      "A",
			Explanation: "O art. 8º da Lei 8.906/94 exige diploma e aprovação em Exame de Ordem.",
		},
		{
			Question: models.Question{
				ID:        "oab-const-001",
				Statement: "O mandado de segurança é cabível para proteger direito líquido e certo:",
				Alternatives: map[string]string{
					"A": "amparado por habeas corpus",
					"B": "não amparado por habeas corpus ou habeas data",
					"C": "somente contra particulares",
					"D": "somente em matéria tributária",
				},
				Difficulty: "facil",
				Area:       "constitucional",
			},
			Answer:      "B",
			Explanation: "Art. 5º, LXIX, da Constituição Federal.",
		},
		{
			Question: models.Question{
				ID:        "oab-civil-001",
				Statement: "A prescrição da pretensão de reparação civil, como regra geral do Código Civil, ocorre em:",
				Alternatives: map[string]string{
					"A": "um ano",
					"B": "cinco anos",
					"C": "três anos",
					"D": "dez anos",
				},
				Difficulty: "media",
				Area:       "civil",
			},
			Answer:      "C",
			Explanation: "Art. 206, §3º, V, do Código Civil.",
		},
		{
			Question: models.Question{
				ID:        "oab-penal-001",
				Statement: "Considera-se praticado o crime no momento:",
				Alternatives: map[string]string{
					"A": "do resultado",
					"B": "da ação ou omissão, ainda que outro seja o momento do resultado",
					"C": "da denúncia",
					"D": "da sentença condenatória",
				},
				Difficulty: "facil",
				Area:       "penal",
			},
			Answer:      "B",
			Explanation: "Teoria da atividade, art. 4º do Código Penal.",
		},
		{
			Question: models.Question{
				ID:        "oab-proccivil-001",
				Statement: "O prazo para apresentação de contestação no procedimento comum é de:",
				Alternatives: map[string]string{
					"A": "10 dias úteis",
					"B": "5 dias úteis",
					"C": "30 dias corridos",
					"D": "15 dias úteis",
				},
				Difficulty: "facil",
				Area:       "processo_civil",
			},
			Answer:      "D",
			Explanation: "Art. 335 do Código de Processo Civil.",
		},
		{
			Question: models.Question{
				ID:        "oab-trabalho-001",
				Statement: "O aviso prévio proporcional ao tempo de serviço acresce, por ano trabalhado na mesma empresa:",
				Alternatives: map[string]string{
					"A": "3 dias, até o máximo de 60 dias",
					"B": "5 dias, sem limite",
					"C": "3 dias, até o máximo de 90 dias no total",
					"D": "1 dia, até o máximo de 30 dias",
				},
				Difficulty: "media",
				Area:       "trabalho",
			},
			Answer:      "C",
			Explanation: "Lei 12.506/2011: 30 dias mais 3 por ano, até 90 dias.",
		},
		{
			Question: models.Question{
				ID:        "oab-trib-001",
				Statement: "É vedado à União, aos Estados, ao Distrito Federal e aos Municípios cobrar tributos no mesmo exercício financeiro em que haja sido publicada a lei que os instituiu. Trata-se do princípio da:",
				Alternatives: map[string]string{
					"A": "anterioridade",
					"B": "legalidade",
					"C": "isonomia",
					"D": "capacidade contributiva",
				},
				Difficulty: "facil",
				Area:       "tributario",
			},
			Answer:      "A",
			Explanation: "Art. 150, III, b, da Constituição Federal.",
		},
	}, true)
}
