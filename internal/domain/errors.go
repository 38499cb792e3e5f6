package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrMissingCompany: falta el parámetro obligatorio company tras agotar
	// query string y body JSON.
	ErrMissingCompany = errors.New("parámetro 'company' requerido")
	// ErrNoActiveProfiles: la company no tiene POS Profiles habilitados y el
	// caller no envió ninguno.
	ErrNoActiveProfiles = errors.New("sin POS Profiles activos para la company")
)
