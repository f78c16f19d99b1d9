package prompts

import (
	"fmt"
	"strings"

	"packaging-report/internal/domain/entities"
)

type Language string

const (
	English    Language = "en"
	Portuguese Language = "pt-BR"
)

type promptSet struct {
	notIdentified   string
	extractionTitle string
	evaluationTitle string
	extraction      string
	evaluation      string
}

var sets = map[Language]promptSet{
	English: {
		notIdentified:   "Not identified",
		extractionTitle: "Extraction result",
		evaluationTitle: "Technical evaluation result",
		extraction: strings.Join([]string{
			`You are a technical evaluation assistant for **first production** runs, responsible for evaluating images of **packaging and products** against technical criteria.`,
			``,
			`Visually analyse the images and extract, when available, the following information directly from the labelling:`,
			`- Supplier name:`,
			`- Supplier tax ID:`,
			`- Product description:`,
			`- Manufacturing date:`,
			`- Expiry date:`,
			`- Lot:`,
			`- Barcode (EAN):`,
			`If any information is not visible or legible, mark it as **"Not identified"**.`,
		}, "\n"),
		evaluation: strings.Join([]string{
			`You are a technical evaluation assistant for **packaging**, responsible for analysing images of **packaging** against technical criteria.`,
			``,
			`The evaluation must focus on the following criteria:`,
			`- Conformity with the regulatory requirements of the product category;`,
			`- Presence and legibility of dating (manufacturing and expiry), lot and barcode (EAN);`,
			`- Presence of mandatory information (usage, composition, manufacturer, precautions);`,
			`- Absence of spelling and grammar errors;`,
			`- Physical condition of the packaging (no damage, leaks or deformation).`,
			``,
			`**Answer instructions**:`,
			`- The answer must be a single paragraph of **running text**, in **technical and objective** language;`,
			`- **Do not use bullet points**;`,
			`- If you find failures, present each one inline as a **point of concern**, with a technical recommendation.`,
			``,
			`Example of expected output:`,
			`The analysed packaging shows dating, barcode and lot legibly and in accordance with the category requirements. The mandatory information is present and correctly written. The labelling shows composition, directions for use, precautions and manufacturer details as required. The packaging shows no signs of damage or deformation. Its approval for sale is recommended.`,
		}, "\n"),
	},
	Portuguese: {
		notIdentified:   "Não identificado",
		extractionTitle: "Resultado da Extração",
		evaluationTitle: "Resultado da Avaliação Técnica",
		extraction: strings.Join([]string{
			`Você é um assistente de avaliação técnica de **primeira produção**, responsável por avaliar imagens de **embalagens e produtos** com base em critérios técnicos.`,
			``,
			`Analise visualmente as imagens e extraia, se disponíveis, as seguintes informações diretamente da rotulagem:`,
			`- Nome do fornecedor:`,
			`- CNPJ do fornecedor:`,
			`- Descrição do produto:`,
			`- Data de fabricação:`,
			`- Data de validade:`,
			`- Lote:`,
			`- Código EAN:`,
			`Se alguma informação não estiver visível ou legível, sinalize como **"Não identificado"**.`,
		}, "\n"),
		evaluation: strings.Join([]string{
			`Você é um assistente de avaliação técnica de **embalagens**, responsável por analisar as imagens de **embalagens** com base em critérios técnicos.`,
			``,
			`A avaliação deve ser feita com foco nos seguintes critérios:`,
			`- Conformidade com exigências normativas da categoria;`,
			`- Presença e legibilidade de datação (fabricação e validade), lote e código EAN;`,
			`- Presença de informações obrigatórias (uso, composição, fabricante, precauções);`,
			`- Ausência de erros ortográficos e gramaticais;`,
			`- Condição física da embalagem (sem avarias, vazamentos ou deformações).`,
			``,
			`**Instruções de resposta**:`,
			`- A resposta deve ser um único parágrafo em **texto corrido**, com linguagem **técnica e objetiva**;`,
			`- **Não use bullet points**;`,
			`- Caso encontre falhas, apresente cada uma no próprio texto como **ponto de atenção**, com recomendação técnica.`,
			``,
			`Exemplo de saída esperada:`,
			`A embalagem analisada apresenta datação, código EAN e lote de forma legível e de acordo com os requisitos da categoria. As informações obrigatórias estão presentes e redigidas corretamente. A rotulagem apresenta composição, modo de uso, precauções e dados do fabricante conforme exigido. A embalagem não apresenta sinais de avaria ou deformação. Recomenda-se sua aprovação para comercialização.`,
		}, "\n"),
	},
}

func ParseLanguage(s string) (Language, error) {
	lang := Language(s)
	if _, ok := sets[lang]; !ok {
		return "", fmt.Errorf("unsupported prompt language: %q", s)
	}
	return lang, nil
}

func ExtractionPrompt() string {
	return sets[English].extraction
}

func EvaluationPrompt() string {
	return sets[English].evaluation
}

// NotIdentified returns the placeholder the model is told to use for unreadable fields.
func NotIdentified(lang Language) string {
	return lookup(lang).notIdentified
}

// Catalog returns the analyses in the order they run. Unknown languages fall back to English.
func Catalog(lang Language) []entities.Analysis {
	set := lookup(lang)
	return []entities.Analysis{
		{
			Name:   entities.AnalysisExtraction,
			Title:  set.extractionTitle,
			Prompt: set.extraction,
			State:  entities.StateExtracting,
		},
		{
			Name:   entities.AnalysisEvaluation,
			Title:  set.evaluationTitle,
			Prompt: set.evaluation,
			State:  entities.StateEvaluating,
		},
	}
}

func lookup(lang Language) promptSet {
	if set, ok := sets[lang]; ok {
		return set
	}
	return sets[English]
}
