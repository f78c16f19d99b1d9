package api

import (
	"fmt"

	"packaging-report/internal/domain/entities"
	"packaging-report/internal/domain/prompts"
)

// pageText はトップページの文言
type pageText struct {
	Title        string
	Subtitle     string
	Choose       string
	Analyze      string
	SelectedNote string
	LimitNote    string
}

type messageSet struct {
	page            pageText
	states          map[entities.SessionState]string
	decodeFailed    string
	noInput         string
	noValidImages   string
	inferenceFailed string
}

var messages = map[prompts.Language]messageSet{
	prompts.English: {
		page: pageText{
			Title:        "First Production Report",
			Subtitle:     "Upload up to 5 JPG or JPEG images of the packaging and the product.",
			Choose:       "Choose images",
			Analyze:      "Analyze images",
			SelectedNote: "{n} file(s) selected.",
			LimitNote:    "{n} files selected, only the first {max} will be analyzed.",
		},
		states: map[entities.SessionState]string{
			entities.StateIntake:     "Reading images...",
			entities.StateExtracting: "Analyzing the labeling to extract technical information...",
			entities.StateEvaluating: "Running the technical evaluation of the packaging...",
			entities.StateDone:       "Analysis complete",
		},
		decodeFailed:    "Failed to open image %s: %v",
		noInput:         "Upload at least one image.",
		noValidImages:   "No valid image was processed.",
		inferenceFailed: "Error during the AI analysis: %v",
	},
	prompts.Portuguese: {
		page: pageText{
			Title:        "Relatório de Primeira Produção",
			Subtitle:     "Envie até 5 imagens JPG ou JPEG para análise.",
			Choose:       "Escolher imagens",
			Analyze:      "Analisar Imagens",
			SelectedNote: "{n} arquivo(s) selecionado(s).",
			LimitNote:    "{n} arquivos selecionados, apenas os primeiros {max} serão analisados.",
		},
		states: map[entities.SessionState]string{
			entities.StateIntake:     "Lendo imagens...",
			entities.StateExtracting: "Analisando rotulagem para extração de informações técnicas...",
			entities.StateEvaluating: "Realizando avaliação técnica da embalagem...",
			entities.StateDone:       "Análise concluída",
		},
		decodeFailed:    "Erro ao abrir imagem %s: %v",
		noInput:         "Envie pelo menos uma imagem.",
		noValidImages:   "Nenhuma imagem válida foi processada.",
		inferenceFailed: "Erro durante a análise com IA: %v",
	},
}

func messagesFor(lang prompts.Language) messageSet {
	if m, ok := messages[lang]; ok {
		return m
	}
	return messages[prompts.English]
}

func (m messageSet) stateMessage(state entities.SessionState) string {
	return m.states[state]
}

func (m messageSet) decodeFailureMessage(failure *entities.DecodeFailure) string {
	return fmt.Sprintf(m.decodeFailed, failure.Filename, failure.Cause)
}

// errorMessage は種別ごとのユーザー向け文言を返す
func (m messageSet) errorMessage(kind entities.ErrorKind, err error) string {
	switch kind {
	case entities.KindNoInput:
		return m.noInput
	case entities.KindNoValidImages:
		return m.noValidImages
	default:
		return fmt.Sprintf(m.inferenceFailed, err)
	}
}
