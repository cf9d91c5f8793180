// Package i18n holds the localized user-facing error strings shown by the
// proxy endpoints. Unknown languages fall back to English.
package i18n

import "virtualagent-backend/internal/openai"

const defaultLanguage = "en"

var messages = map[string]map[openai.ErrorKind]string{
	"en": {
		openai.KindInvalidRequest: "The request could not be processed. Please try again.",
		openai.KindAuthentication: "The configured API key was rejected. Please check the agent configuration.",
		openai.KindPayment:        "The provider account is out of credit. Please check your billing settings.",
		openai.KindRateLimit:      "The assistant is receiving too many requests. Please wait a moment.",
		openai.KindAPI:            "The assistant is temporarily unavailable. Please try again later.",
	},
	"fr": {
		openai.KindInvalidRequest: "La demande n'a pas pu être traitée. Veuillez réessayer.",
		openai.KindAuthentication: "La clé API configurée a été refusée. Veuillez vérifier la configuration de l'agent.",
		openai.KindPayment:        "Le compte du fournisseur n'a plus de crédit. Veuillez vérifier vos paramètres de facturation.",
		openai.KindRateLimit:      "L'assistant reçoit trop de demandes. Veuillez patienter un instant.",
		openai.KindAPI:            "L'assistant est temporairement indisponible. Veuillez réessayer plus tard.",
	},
}

// ProviderMessage returns the localized message for a provider error kind.
func ProviderMessage(language string, kind openai.ErrorKind) string {
	table, ok := messages[language]
	if !ok {
		table = messages[defaultLanguage]
	}
	if msg, ok := table[kind]; ok {
		return msg
	}
	return table[openai.KindAPI]
}
