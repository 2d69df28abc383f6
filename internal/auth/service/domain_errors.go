package service

import (
	"net/http"

	commonerrors "github.com/seo-pirate/backend/internal/common/errors"
)

var (
	ErrRegisterFieldsMissing = commonerrors.NewDomainError(
		"REGISTER_FIELDS_MISSING",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Provide email, password and username",
	)

	ErrInvalidEmail = commonerrors.NewDomainError(
		"INVALID_EMAIL",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Provide a valid email address.",
	)

	ErrWeakPassword = commonerrors.NewDomainError(
		"WEAK_PASSWORD",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Password must have at least 6 characters and contain at least one number, one lowercase and one uppercase letter.",
	)

	ErrEmailTaken = commonerrors.ErrEmailAlreadyExists

	ErrLoginFieldsMissing = commonerrors.NewDomainError(
		"LOGIN_FIELDS_MISSING",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Provide username and password.",
	)

	ErrUnknownUser = commonerrors.NewDomainError(
		"UNKNOWN_USER",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"User not found.",
	)

	ErrUnableToAuthenticate = commonerrors.NewDomainError(
		"UNABLE_TO_AUTHENTICATE",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"Unable to authenticate the user",
	)
)
