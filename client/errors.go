package client

import (
	"encoding/json"
	"log"
	"net/http"

	"gastos/shared"
)

// handleApiError decodes a structured error from a non-2xx response body,
// falling back to the raw body text when the server didn't send one.
func handleApiError(r *http.Response, errBody []byte) *shared.ApiError {
	var apiError shared.ApiError
	if err := json.Unmarshal(errBody, &apiError); err == nil && apiError.Msg != "" {
		apiError.Status = r.StatusCode
		return &apiError
	}

	log.Printf("Non-JSON response body: %s\n", string(errBody))

	return &shared.ApiError{
		Type:   shared.ApiErrorTypeOther,
		Status: r.StatusCode,
		Msg:    string(errBody),
	}
}

// LocalizedErrorMessage maps an error to the user-facing message shown in
// the app's language.
func LocalizedErrorMessage(apiErr *shared.ApiError) string {
	if apiErr == nil {
		return ""
	}

	switch apiErr.Type {
	case shared.ApiErrorTypeInvalidToken:
		return "Sessão expirada. Faça login novamente."
	case shared.ApiErrorTypeInvalidCredential:
		return "Credenciais inválidas. Verifique seu e-mail e senha."
	case shared.ApiErrorTypeEmailAlreadyInUse:
		return "Este e-mail já está em uso."
	case shared.ApiErrorTypeInvalidInput:
		if apiErr.Msg != "" {
			return apiErr.Msg
		}
		return "Dados inválidos. Verifique os campos e tente novamente."
	case shared.ApiErrorTypeNotFound:
		return "Registro não encontrado."
	case shared.ApiErrorTypePermissionDenied:
		return "Você não tem permissão para esta operação."
	default:
		return "Ocorreu um erro inesperado. Tente novamente."
	}
}
